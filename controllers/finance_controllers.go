package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"restaurant-manager/services"
	"restaurant-manager/utils"
)

type FinanceController struct {
	svc *services.FinanceService
}

func NewFinanceController(db *gorm.DB) *FinanceController {
	return &FinanceController{svc: services.NewFinanceService(db)}
}

// CreateExpense -> record an expense; spent_at defaults to now.
func (fc *FinanceController) CreateExpense(c *gin.Context) {
	var req struct {
		Name     string          `json:"name"`
		Amount   decimal.Decimal `json:"amount"`
		Category string          `json:"category"`
		SpentAt  *time.Time      `json:"spent_at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	spentAt := time.Time{}
	if req.SpentAt != nil {
		spentAt = *req.SpentAt
	}

	expense, err := fc.svc.CreateExpense(req.Name, req.Amount, req.Category, spentAt)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Expense recorded", expense)
}

// GetAllExpenses -> expenses, optionally limited to ?start=&end= dates.
func (fc *FinanceController) GetAllExpenses(c *gin.Context) {
	var err error
	var expenses interface{}
	if c.Query("start") != "" || c.Query("end") != "" {
		var start, end time.Time
		start, end, err = parseDateRange(c)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		expenses, err = fc.svc.ListExpensesBetween(start, end)
	} else {
		expenses, err = fc.svc.ListExpenses()
	}
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of expenses", expenses)
}

func (fc *FinanceController) DeleteExpense(c *gin.Context) {
	id, err := parseID(c, "expense_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := fc.svc.DeleteExpense(id); err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Expense deleted", gin.H{"id": id})
}

// GetRevenueReport -> completed-order revenue over a period, grouped by
// ?group_by=day|category|table, or the plain total when absent.
func (fc *FinanceController) GetRevenueReport(c *gin.Context) {
	start, end, err := parseDateRange(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	switch c.Query("group_by") {
	case "day":
		byDay, err := fc.svc.RevenueByDay(start, end)
		if err != nil {
			utils.RespondDomainError(c, err)
			return
		}
		utils.RespondJSON(c, http.StatusOK, "Revenue by day", byDay)
	case "category":
		byCategory, err := fc.svc.RevenueByCategory(start, end)
		if err != nil {
			utils.RespondDomainError(c, err)
			return
		}
		utils.RespondJSON(c, http.StatusOK, "Revenue by category", byCategory)
	case "table":
		byTable, err := fc.svc.RevenueByTable(start, end)
		if err != nil {
			utils.RespondDomainError(c, err)
			return
		}
		utils.RespondJSON(c, http.StatusOK, "Revenue by table", byTable)
	case "":
		total, err := fc.svc.TotalRevenue(start, end)
		if err != nil {
			utils.RespondDomainError(c, err)
			return
		}
		utils.RespondJSON(c, http.StatusOK, "Total revenue", gin.H{
			"total":     total,
			"formatted": utils.FormatCurrencyEUR(total),
		})
	default:
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown group_by %q", c.Query("group_by")))
	}
}

// GetExpenseReport -> expenses grouped by category over a period.
func (fc *FinanceController) GetExpenseReport(c *gin.Context) {
	start, end, err := parseDateRange(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	byCategory, err := fc.svc.ExpensesByCategory(start, end)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Expenses by category", byCategory)
}

// GetProfitReport -> revenue minus expenses over a period.
func (fc *FinanceController) GetProfitReport(c *gin.Context) {
	start, end, err := parseDateRange(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	profit, err := fc.svc.Profit(start, end)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Profit", gin.H{
		"profit":    profit,
		"formatted": utils.FormatCurrencyEUR(profit),
	})
}

// GetDashboardStats -> the counters for the overview screen.
func (fc *FinanceController) GetDashboardStats(c *gin.Context) {
	stats, err := fc.svc.Stats(time.Now())
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", stats)
}

// ExportReport streams the financial report for the period as CSV.
func (fc *FinanceController) ExportReport(c *gin.Context) {
	start, end, err := parseDateRange(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	filename := fmt.Sprintf("financial-report-%s-%s.csv",
		start.Format("2006-01-02"), end.AddDate(0, 0, -1).Format("2006-01-02"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Content-Type", "text/csv")

	if err := fc.svc.ExportCSV(c.Writer, start, end); err != nil {
		utils.RespondDomainError(c, err)
		return
	}
}

// parseDateRange reads ?start= and ?end= (YYYY-MM-DD, end inclusive) and
// returns a half-open [start, end) range. Defaults to the last 30 days.
func parseDateRange(c *gin.Context) (time.Time, time.Time, error) {
	const layout = "2006-01-02"
	now := time.Now()

	start := now.AddDate(0, 0, -30)
	end := now.AddDate(0, 0, 1)

	if s := c.Query("start"); s != "" {
		parsed, err := time.ParseInLocation(layout, s, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid start date %q", s)
		}
		start = parsed
	}
	if e := c.Query("end"); e != "" {
		parsed, err := time.ParseInLocation(layout, e, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid end date %q", e)
		}
		end = parsed.AddDate(0, 0, 1)
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("end date before start date")
	}
	return start, end, nil
}
