package ginserver

import (
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"homestay/internal/app/dto"
	catalogapp "homestay/internal/app/handlers/catalog"
	"homestay/internal/app/queries"
)

// PlaceHandler wires catalog queries to HTTP.
type PlaceHandler struct {
	Queries queries.Bus
	Logger  *slog.Logger
}

// Catalog responds with one filtered, sorted page of places.
func (h PlaceHandler) Catalog(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog unavailable"})
		return
	}
	query, err := catalogQueryFromRequest(c)
	if err != nil {
		writeBadRequest(c, err.Error())
		return
	}
	result, err := queries.Ask[catalogapp.QueryCatalogQuery, dto.CatalogPage](c.Request.Context(), h.Queries, query)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h PlaceHandler) Get(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog unavailable"})
		return
	}
	query := catalogapp.GetPlaceQuery{PlaceID: c.Param("id")}
	result, err := queries.Ask[catalogapp.GetPlaceQuery, dto.PlaceCard](c.Request.Context(), h.Queries, query)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func catalogQueryFromRequest(c *gin.Context) (catalogapp.QueryCatalogQuery, error) {
	query := catalogapp.QueryCatalogQuery{
		Session:    currentSession(c),
		SearchTerm: c.Query("q"),
		Category:   c.Query("category"),
		Sort:       c.Query("sort"),
		BrowseID:   c.GetHeader("X-Browse-ID"),
	}
	if query.BrowseID == "" {
		query.BrowseID = c.Query("browse_id")
	}
	var err error
	if query.PriceMin, err = optionalInt64("price_min", c.Query("price_min")); err != nil {
		return query, err
	}
	if query.PriceMax, err = optionalInt64("price_max", c.Query("price_max")); err != nil {
		return query, err
	}
	if query.MinRating, err = optionalFloat("min_rating", c.Query("min_rating")); err != nil {
		return query, err
	}
	if query.MinGuests, err = optionalInt("min_guests", c.Query("min_guests")); err != nil {
		return query, err
	}
	if query.Page, err = intOrZero("page", c.Query("page")); err != nil {
		return query, err
	}
	if query.PageSize, err = intOrZero("page_size", c.Query("page_size")); err != nil {
		return query, err
	}
	return query, nil
}

var _ PlaceHTTP = PlaceHandler{}
