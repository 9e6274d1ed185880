package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"pahe/internal/httputil"
	"pahe/internal/provider"
)

type handlers struct {
	provider provider.Provider
}

func (h *handlers) search(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing query parameter q")
	}

	results, err := h.provider.Search(c.UserContext(), q)
	if err != nil {
		return err
	}
	return c.JSON(results)
}

func (h *handlers) details(c *fiber.Ctx) error {
	u, err := pageURL(c)
	if err != nil {
		return err
	}

	d, err := h.provider.GetDetails(c.UserContext(), u)
	if err != nil {
		return err
	}
	return c.JSON(d)
}

func (h *handlers) episodes(c *fiber.Ctx) error {
	u, err := pageURL(c)
	if err != nil {
		return err
	}

	episodes, err := h.provider.GetEpisodes(c.UserContext(), u)
	if err != nil {
		return err
	}
	return c.JSON(episodes)
}

func (h *handlers) qualities(c *fiber.Ctx) error {
	u, err := pageURL(c)
	if err != nil {
		return err
	}

	q, err := h.provider.GetQualities(c.UserContext(), u)
	if err != nil {
		return err
	}
	return c.JSON(q)
}

// pageURL returns the validated url query parameter.
func pageURL(c *fiber.Ctx) (string, error) {
	u := c.Query("url")
	if u == "" {
		return "", fiber.NewError(fiber.StatusBadRequest, "missing query parameter url")
	}
	if err := httputil.ValidateURL(u); err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return u, nil
}
