package http

import (
	"transfer-service/src/internal/model"
	"transfer-service/src/internal/usecase"
	httpError "transfer-service/src/pkg/http-error"
	"transfer-service/src/pkg/log"
	"transfer-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type BookingController struct {
	Log     log.Log
	UseCase *usecase.BookingUseCase
}

func NewBookingController(useCase *usecase.BookingUseCase, logger log.Log) *BookingController {
	return &BookingController{
		Log:     logger,
		UseCase: useCase,
	}
}

func (c *BookingController) CreateBooking(ctx *fiber.Ctx) error {
	request := new(model.CreateBookingRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("BookingController.CreateBooking", "Failed to parse request body", "error", err.Error())
		errObj := httpError.NewBadRequest()
		errObj.Message = "invalid request body"
		return utils.ResponseError(errObj, ctx)
	}

	result := c.UseCase.CreateBooking(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Booking created", fiber.StatusCreated, ctx)
}

func (c *BookingController) GetBooking(ctx *fiber.Ctx) error {
	request := &model.GetBookingRequest{
		PublicCode: ctx.Params("code"),
		Email:      ctx.Query("email"),
	}

	result := c.UseCase.GetBooking(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Booking", fiber.StatusOK, ctx)
}
