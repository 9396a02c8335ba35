package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListResponse envuelve toda lista (citas, clientes, movimientos) con su
// total, para que el front no cuente.
type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

func List[T any](c *gin.Context, data []T) {
	c.JSON(http.StatusOK, ListResponse[T]{
		Data:  data,
		Total: len(data),
	})
}
