package handlers

import (
	"net/http"
	"strconv"

	"go-attackboard/views"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// QueryRecords serves one page of the Data tab.
// Query params: filter[<column>]=expr, sort=col[:asc|desc],..., page, page_size.
func QueryRecords(c *gin.Context, d *views.Dashboard) {
	q := views.Query{Filters: c.QueryMap("filter")}

	var err error
	if q.Sort, err = views.ParseSort(c.Query("sort")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if q.Page, err = intParam(c, "page"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page", "details": err.Error()})
		return
	}
	if q.PageSize, err = intParam(c, "page_size"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page_size", "details": err.Error()})
		return
	}

	page, err := d.Table.Query(q)
	if err != nil {
		zap.L().Debug("Rejected records query", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, page)
}

func intParam(c *gin.Context, name string) (int, error) {
	v := c.Query(name)
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}
