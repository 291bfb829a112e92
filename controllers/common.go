package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/qrmenu-app/utils"
)

// respondDomainError memetakan error domain ke kode HTTP. Error backend
// yang tidak dikenal dicatat lalu dibalas 500 generik tanpa detail.
func respondDomainError(c *gin.Context, err error) {
	code := utils.HTTPStatus(err)
	if code == http.StatusInternalServerError {
		utils.ErrorLogger.Printf("Internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		utils.RespondError(c, code, errors.New("internal server error"))
		return
	}
	utils.RespondError(c, code, err)
}

// tenantFromContext -> tenant scope yang di-set AuthMiddleware
func tenantFromContext(c *gin.Context) uint {
	return c.GetUint("tenant_id")
}
