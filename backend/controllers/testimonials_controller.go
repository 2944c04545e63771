package controllers

import (
	"learning_portal/backend/models"
	"learning_portal/backend/services"
	"learning_portal/backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type TestimonialsController struct {
	Store services.TestimonialStore
	Log   *zap.Logger
}

func NewTestimonialsController(store services.TestimonialStore, log *zap.Logger) *TestimonialsController {
	return &TestimonialsController{Store: store, Log: log}
}

func (tc *TestimonialsController) GetTestimonials(c *fiber.Ctx) error {
	items, err := tc.Store.List(c.UserContext())
	if err != nil {
		return utils.RespondError(c, tc.Log, err)
	}
	return c.JSON(items)
}

func (tc *TestimonialsController) CreateTestimonial(c *fiber.Ctx) error {
	type TestimonialInput struct {
		Name    string `json:"name" validate:"required"`
		Role    string `json:"role"`
		Avatar  string `json:"avatar"`
		Content string `json:"content" validate:"required"`
		Rating  int    `json:"rating" validate:"gte=0,lte=5"`
	}

	var input TestimonialInput
	if err := utils.ParseAndValidate(c, &input); err != nil {
		return utils.RespondError(c, tc.Log, err)
	}

	item := models.Testimonial{
		Name:    input.Name,
		Role:    input.Role,
		Avatar:  input.Avatar,
		Content: input.Content,
		Rating:  input.Rating,
	}
	if err := tc.Store.Create(c.UserContext(), &item); err != nil {
		return utils.RespondError(c, tc.Log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}
