package handlers

import (
	"fmt"
	"net/http"

	"github.com/iwtcode/mechanismAdapter/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// GetMechanisms возвращает последнюю сводку по всем механизмам.
func (h *Handler) GetMechanisms(c *gin.Context) {
	resp, err := h.usecase.GetMechanisms()
	if err != nil {
		h.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetMechanism возвращает телеметрию одного механизма.
func (h *Handler) GetMechanism(c *gin.Context) {
	m, err := h.usecase.GetMechanism(c.Param("name"))
	if err != nil {
		h.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// GetAlerts возвращает активные оповещения.
func (h *Handler) GetAlerts(c *gin.Context) {
	resp, err := h.usecase.GetAlerts()
	if err != nil {
		h.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SetTarget задает цель механизма по имени положения или числом.
func (h *Handler) SetTarget(c *gin.Context) {
	name := c.Param("name")
	var req models.TargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err, "Invalid request payload")
		return
	}

	if err := h.usecase.SetTarget(name, req); err != nil {
		h.FromError(c, err)
		return
	}
	h.OK(c, fmt.Sprintf("Target set for %s", name))
}

// SetOpenLoop переводит механизм в разомкнутое управление.
func (h *Handler) SetOpenLoop(c *gin.Context) {
	name := c.Param("name")
	var req models.OpenLoopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err, "Invalid request payload")
		return
	}

	if err := h.usecase.SetOpenLoop(name, req); err != nil {
		h.FromError(c, err)
		return
	}
	h.OK(c, fmt.Sprintf("Open loop output set for %s", name))
}

// SetVoltage подает напряжение на привод механизма.
func (h *Handler) SetVoltage(c *gin.Context) {
	name := c.Param("name")
	var req models.VoltageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err, "Invalid request payload")
		return
	}

	if err := h.usecase.SetVoltage(name, req); err != nil {
		h.FromError(c, err)
		return
	}
	h.OK(c, fmt.Sprintf("Voltage set for %s", name))
}

// StopMechanism останавливает механизм и сбрасывает его цель.
func (h *Handler) StopMechanism(c *gin.Context) {
	name := c.Param("name")
	if err := h.usecase.StopMechanism(name); err != nil {
		h.FromError(c, err)
		return
	}
	h.OK(c, fmt.Sprintf("%s stopped", name))
}

// StopAll останавливает все механизмы.
func (h *Handler) StopAll(c *gin.Context) {
	if err := h.usecase.StopAll(); err != nil {
		h.FromError(c, err)
		return
	}
	h.OK(c, "All mechanisms stopped")
}
