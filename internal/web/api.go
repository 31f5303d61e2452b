package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/ventures/internal/portfolio"
)

// queryFromParams builds a fresh query state from URL parameters.
// category and stage may repeat.
func queryFromParams(c *gin.Context) (*portfolio.QueryState, error) {
	return portfolio.NewQuery(c.Query("q"), c.QueryArray("category"), c.QueryArray("stage"), c.Query("sort"))
}

func (s *Server) apiVentures(c *gin.Context) {
	q, err := queryFromParams(c)
	if err != nil {
		status := http.StatusInternalServerError
		if isFacetError(err) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, portfolio.Apply(s.catalog.Current(), q))
}

func (s *Server) apiVenture(c *gin.Context) {
	v, ok := s.catalog.Current().Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "venture not found"})
		return
	}
	c.JSON(http.StatusOK, v)
}

func (s *Server) apiFacets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"categories":  portfolio.CategoryFacets(),
		"stages":      portfolio.StageFacets(),
		"sorts":       portfolio.SortFacets(),
		"defaultSort": portfolio.DefaultSort,
	})
}
