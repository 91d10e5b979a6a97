package http

import (
	"transfer-service/src/internal/model"
	"transfer-service/src/internal/usecase"
	httpError "transfer-service/src/pkg/http-error"
	"transfer-service/src/pkg/log"
	"transfer-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type ModificationController struct {
	Log     log.Log
	UseCase *usecase.ModificationUseCase
}

func NewModificationController(useCase *usecase.ModificationUseCase, logger log.Log) *ModificationController {
	return &ModificationController{
		Log:     logger,
		UseCase: useCase,
	}
}

func (c *ModificationController) CanModify(ctx *fiber.Ctx) error {
	request := &model.CanModifyRequest{
		PublicCode: ctx.Params("code"),
		Email:      ctx.Query("email"),
	}

	result := c.UseCase.CanModify(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Modification pre-flight", fiber.StatusOK, ctx)
}

func (c *ModificationController) ModifyBooking(ctx *fiber.Ctx) error {
	request := new(model.ModifyBookingRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("ModificationController.ModifyBooking", "Failed to parse request body", "error", err.Error())
		errObj := httpError.NewBadRequest()
		errObj.Message = "invalid request body"
		return utils.ResponseError(errObj, ctx)
	}
	request.PublicCode = ctx.Params("code")

	result := c.UseCase.ModifyBooking(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Booking updated", fiber.StatusOK, ctx)
}

func (c *ModificationController) CancelBooking(ctx *fiber.Ctx) error {
	request := new(model.CancelBookingRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("ModificationController.CancelBooking", "Failed to parse request body", "error", err.Error())
		errObj := httpError.NewBadRequest()
		errObj.Message = "invalid request body"
		return utils.ResponseError(errObj, ctx)
	}
	request.PublicCode = ctx.Params("code")

	result := c.UseCase.CancelBooking(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Booking cancelled", fiber.StatusOK, ctx)
}
