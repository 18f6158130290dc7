package dashboard

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/cave/internal/filter"
	"github.com/zulandar/cave/internal/models"
	"github.com/zulandar/cave/internal/view"
)

var errUnknownType = errors.New("unknown challenge type")

// logSelection reads ?file=&level=&coroutine=a&coroutine=b&loop_num=.
func logSelection(c *gin.Context) (filter.LogSelection, error) {
	var sel filter.LogSelection
	if err := c.ShouldBindQuery(&sel); err != nil {
		return filter.LogSelection{}, fmt.Errorf("invalid log filter: %w", err)
	}
	if sel.LoopNum < 0 {
		return filter.LogSelection{}, fmt.Errorf("invalid log filter: loop_num %d is negative", sel.LoopNum)
	}
	return sel, nil
}

// responsesQuery reads the :type path segment and ?type=&node=&miner=&selected=.
// The path segment wins over a type filter for typed routes.
func responsesQuery(c *gin.Context, pending bool) (view.ResponsesQuery, error) {
	q := view.ResponsesQuery{Pending: pending}
	if raw := c.Param("type"); raw != "" {
		t, err := models.ParseChallengeType(raw)
		if err != nil {
			return q, errUnknownType
		}
		q.Type = t
	}
	if err := c.ShouldBindQuery(&q.Filter); err != nil {
		return q, fmt.Errorf("invalid response filter: %w", err)
	}
	if raw := c.Query("selected"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return q, fmt.Errorf("invalid selected response id %q", raw)
		}
		q.SelectedID = id
	}
	return q, nil
}
