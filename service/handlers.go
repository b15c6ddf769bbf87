package service

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tweedegolf/bag-address-lookup/database"
	"github.com/tweedegolf/bag-address-lookup/errs"
	"github.com/tweedegolf/bag-address-lookup/suggest"
)

// lookupResponse fixes the JSON field order of a successful lookup. The
// short keys follow the Dutch BAG terms: "pr" for openbare ruimte (public
// space), "wp" for woonplaats (locality).
type lookupResponse struct {
	PublicSpace string `json:"pr"`
	Locality    string `json:"wp"`
}

func (s *Server) handleLookup(c *gin.Context) {
	pc, ok := c.GetQuery("pc")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing postal_code"})
		return
	}

	raw, ok := c.GetQuery("n")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing house_number"})
		return
	}

	// A house number that does not parse as an unsigned 32-bit integer is
	// reported the same as an absent one.
	houseNumber, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing house_number"})
		return
	}

	match, found, err := database.Lookup(s.src, pc, uint32(houseNumber))
	switch {
	case errors.Is(err, errs.ErrInvalidPostalCode):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid postal_code"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	case !found:
		c.JSON(http.StatusNotFound, gin.H{"error": "address not found"})
	default:
		c.JSON(http.StatusOK, lookupResponse{
			PublicSpace: match.Street,
			Locality:    match.Locality,
		})
	}
}

func (s *Server) handleSuggest(c *gin.Context) {
	query, ok := c.GetQuery("wp")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing wp"})
		return
	}

	// Localities returns an empty (non-nil) slice for queries without a
	// match, so the response body is always a JSON array.
	names, err := suggest.Localities(s.src, query, s.suggestOpts...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, names)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
