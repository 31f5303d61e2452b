package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/ventures/internal/portfolio"
)

type facetToggle struct {
	Key    string
	Label  string
	Active bool
}

// resultsData is everything the results fragment renders.
type resultsData struct {
	View       portfolio.View
	Search     string
	Sort       string
	Categories []facetToggle
	Stages     []facetToggle
	Sorts      []facetToggle
	EmptyState string
}

func newResultsData(view portfolio.View, q *portfolio.QueryState) resultsData {
	d := resultsData{
		View:       view,
		Search:     q.Search(),
		Sort:       string(q.Sort()),
		EmptyState: EmptyState,
	}
	for _, c := range portfolio.Categories {
		d.Categories = append(d.Categories, facetToggle{Key: string(c), Label: c.Label(), Active: q.CategorySelected(c)})
	}
	for _, st := range portfolio.Stages {
		d.Stages = append(d.Stages, facetToggle{Key: string(st), Label: st.Label(), Active: q.StageSelected(st)})
	}
	for _, o := range portfolio.SortOptions {
		d.Sorts = append(d.Sorts, facetToggle{Key: string(o), Label: o.Label(), Active: o == q.Sort()})
	}
	return d
}

// withSession runs mutate against the caller's query state and returns
// the recomputed view. The session cookie is refreshed on every call.
func (s *Server) withSession(c *gin.Context, mutate func(q *portfolio.QueryState)) resultsData {
	id, _ := c.Cookie(s.cookieName)

	var data resultsData
	id = s.sessions.Do(id, s.catalog.Current, func(sess *Session) {
		if mutate != nil {
			mutate(sess.Query)
		}
		data = newResultsData(portfolio.Apply(sess.Catalog, sess.Query), sess.Query)
	})
	s.setSessionCookie(c, id)
	return data
}

// newSession replaces the caller's session with a fresh one.
func (s *Server) newSession(c *gin.Context) resultsData {
	prev, _ := c.Cookie(s.cookieName)

	var data resultsData
	id := s.sessions.Start(prev, s.catalog.Current, func(sess *Session) {
		data = newResultsData(portfolio.Apply(sess.Catalog, sess.Query), sess.Query)
	})
	s.setSessionCookie(c, id)
	return data
}

func (s *Server) setSessionCookie(c *gin.Context, id string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.cookieName, id, int(s.cookieTTL.Seconds()), "/", "", false, true)
}

func (s *Server) home(c *gin.Context) {
	cat := s.catalog.Current()
	c.HTML(http.StatusOK, "index.html", gin.H{
		"title":          SiteTitle,
		"headline":       Headline,
		"aboutMeContent": AboutMe,
		"featured":       cat.Featured(),
		"totalVentures":  cat.Len(),
	})
}

func (s *Server) portfolioPage(c *gin.Context) {
	data := s.newSession(c)
	c.HTML(http.StatusOK, "ventures.html", gin.H{
		"title":   "Portfolio",
		"intro":   PortfolioIntro,
		"results": data,
	})
}

func (s *Server) results(c *gin.Context) {
	s.renderResults(c, s.withSession(c, nil))
}

func (s *Server) renderResults(c *gin.Context, data resultsData) {
	c.HTML(http.StatusOK, "results.html", data)
}

func (s *Server) search(c *gin.Context) {
	text := c.PostForm("q")
	s.renderResults(c, s.withSession(c, func(q *portfolio.QueryState) {
		q.SetSearch(text)
	}))
}

func (s *Server) toggleCategory(c *gin.Context) {
	cat, err := portfolio.ParseCategory(c.Param("key"))
	if err != nil {
		s.badRequest(c, err)
		return
	}
	s.renderResults(c, s.withSession(c, func(q *portfolio.QueryState) {
		q.ToggleCategory(cat)
	}))
}

func (s *Server) toggleStage(c *gin.Context) {
	st, err := portfolio.ParseStage(c.Param("key"))
	if err != nil {
		s.badRequest(c, err)
		return
	}
	s.renderResults(c, s.withSession(c, func(q *portfolio.QueryState) {
		q.ToggleStage(st)
	}))
}

func (s *Server) setSort(c *gin.Context) {
	opt, err := portfolio.ParseSort(c.PostForm("sort"))
	if err != nil {
		s.badRequest(c, err)
		return
	}
	s.renderResults(c, s.withSession(c, func(q *portfolio.QueryState) {
		q.SetSort(opt)
	}))
}

func (s *Server) clearFilters(c *gin.Context) {
	s.renderResults(c, s.withSession(c, func(q *portfolio.QueryState) {
		q.Clear()
	}))
}

func (s *Server) ventureDetail(c *gin.Context) {
	id, _ := c.Cookie(s.cookieName)
	cat, ok := s.sessions.Snapshot(id)
	if !ok {
		cat = s.catalog.Current()
	}
	v, found := cat.Get(c.Param("id"))
	if !found {
		c.HTML(http.StatusNotFound, "not-found.html", gin.H{"title": "Not Found"})
		return
	}
	c.HTML(http.StatusOK, "venture.html", gin.H{
		"title":   v.Name,
		"venture": v,
	})
}

func (s *Server) badRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.String(http.StatusBadRequest, err.Error())
}

// isFacetError reports whether err came from parsing a facet or sort key.
func isFacetError(err error) bool {
	return errors.Is(err, portfolio.ErrUnknownCategory) ||
		errors.Is(err, portfolio.ErrUnknownStage) ||
		errors.Is(err, portfolio.ErrUnknownSort)
}
