// Recipe HTTP handlers.
//
// This file exposes the read-only catalog endpoints:
//   - GET /recipes         (filtered, sorted, paginated listing)
//   - GET /recipes/{slug}  (full recipe document)
//
// Listing query parameters map 1:1 to the filter engine's criteria;
// empty or "alle" values leave a criterion unconstrained.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/smagen/go-recipe-backend/internal/filter"
	"github.com/smagen/go-recipe-backend/internal/utils"
)

// listingQuery builds a filter.Query from the request's query string.
// Malformed numeric values fall back to "no constraint" rather than
// erroring.
func listingQuery(c *gin.Context) filter.Query {
	return filter.Query{
		Text:           strings.TrimSpace(c.Query("search")),
		MealType:       c.Query("mealType"),
		DishType:       c.Query("dishType"),
		CookingMethod:  c.Query("cookingMethod"),
		Dietary:        c.Query("dietary"),
		TimeMaxMinutes: utils.AtoiDefault(c.Query("timeMax"), 0),
		Difficulty:     c.Query("difficulty"),
		BudgetOnly:     c.Query("budget") == "true",
		HealthyOnly:    c.Query("healthy") == "true",
		Sort:           filter.ParseSortKey(c.Query("sort")),
		Page:           utils.AtoiDefault(c.Query("page"), 1),
	}
}

// ListRecipes godoc
// @ID          listRecipes
// @Summary     List recipes
// @Description Returns a filtered, sorted page of the recipe catalog. All criteria are optional; "alle" or empty means unconstrained.
// @Tags        Recipes
// @Produce     json
//
// @Param       search         query  string  false "Free-text search"
// @Param       mealType       query  string  false "Meal type"        Enums(alle, morgenmad, frokost, aftensmad, dessert, snack, julemad)
// @Param       dishType       query  string  false "Dish type"        Enums(alle, kød, fisk, vegetarisk, pasta, salat, sovs, brød-bageri)
// @Param       cookingMethod  query  string  false "Cooking method"   Enums(alle, airfryer, ovn, pande, gril)
// @Param       dietary        query  string  false "Dietary claim"    Enums(alle, laktosefri, glutenfri, low-carb-keto, vegansk-plantebaseret)
// @Param       timeMax        query  int     false "Maximum total time in minutes"
// @Param       difficulty     query  string  false "Difficulty"       Enums(alle, nem, mellem, svær)
// @Param       budget         query  bool    false "Budget-friendly only"
// @Param       healthy        query  bool    false "Healthy only"
// @Param       sort           query  string  false "Sort key"          Enums(titel, titel-desc, tid, tid-desc, svaerhedsgrad, svaerhedsgrad-desc)
// @Param       page           query  int     false "Page number"       minimum(1) default(1)
//
// @Success     200  {object}  filter.Result
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /recipes [get]
func (h *Handlers) ListRecipes(c *gin.Context) {
	res, err := h.recipeSvc.Browse(c.Request.Context(), listingQuery(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, "recipe catalog unavailable")
		return
	}
	ok(c, http.StatusOK, res)
}

// GetRecipe godoc
// @ID          getRecipe
// @Summary     Get a recipe
// @Description Returns the full recipe document for a slug.
// @Tags        Recipes
// @Produce     json
//
// @Param       slug  path  string  true  "Recipe slug"  example(pandekager)
//
// @Success     200  {object}  catalog.Recipe
// @Failure     404  {object}  handlers.ErrorResponse "Recipe not found"
// @Router      /recipes/{slug} [get]
func (h *Handlers) GetRecipe(c *gin.Context) {
	r, err := h.recipeSvc.Get(c.Request.Context(), c.Param("slug"))
	if err != nil {
		svcError(c, err)
		return
	}
	ok(c, http.StatusOK, r)
}
