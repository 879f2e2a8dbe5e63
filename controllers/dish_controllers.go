package controllers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"restaurant-manager/services"
	"restaurant-manager/utils"
)

type DishController struct {
	svc *services.DishService
}

func NewDishController(db *gorm.DB) *DishController {
	return &DishController{svc: services.NewDishService(db)}
}

type dishRequest struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
}

func (dc *DishController) CreateDish(c *gin.Context) {
	var req dishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	dish, err := dc.svc.Create(req.Name, req.Price, req.Description, req.Category)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Dish created", dish)
}

// GetAllDishes -> the catalog; ?category= narrows to one category.
func (dc *DishController) GetAllDishes(c *gin.Context) {
	category := c.Query("category")

	var err error
	var dishes interface{}
	if category != "" {
		dishes, err = dc.svc.ListByCategory(category)
	} else {
		dishes, err = dc.svc.List()
	}
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of dishes", dishes)
}

func (dc *DishController) GetDishByID(c *gin.Context) {
	id, err := parseID(c, "dish_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	dish, err := dc.svc.Get(id)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Dish detail", dish)
}

func (dc *DishController) UpdateDish(c *gin.Context) {
	id, err := parseID(c, "dish_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var req dishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	dish, err := dc.svc.Update(id, req.Name, req.Price, req.Description, req.Category)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Dish updated", dish)
}

func (dc *DishController) DeleteDish(c *gin.Context) {
	id, err := parseID(c, "dish_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := dc.svc.Delete(id); err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Dish deleted", gin.H{"id": id})
}

// GetCategories -> distinct category tags for the gallery filter.
func (dc *DishController) GetCategories(c *gin.Context) {
	categories, err := dc.svc.Categories()
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of categories", categories)
}

// UploadDishImage stores the photo sent as the "image" form file.
func (dc *DishController) UploadDishImage(c *gin.Context) {
	id, err := parseID(c, "dish_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	file, _, err := c.Request.FormFile("image")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := dc.svc.SetImage(id, data); err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Dish image updated", gin.H{"id": id})
}

// GetDishImage serves the stored photo blob.
func (dc *DishController) GetDishImage(c *gin.Context) {
	id, err := parseID(c, "dish_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	image, err := dc.svc.GetImage(id)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	if len(image) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.Data(http.StatusOK, http.DetectContentType(image), image)
}
