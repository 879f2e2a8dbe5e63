package services

import (
	"encoding/csv"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"restaurant-manager/models"
	"restaurant-manager/repositories"
	"restaurant-manager/utils"
)

const uncategorized = "Uncategorized"

// FinanceService owns expense bookkeeping and the read-side aggregations
// for reporting. All sums are exact decimal arithmetic; grouping happens in
// Go over scanned rows so the same code runs on MySQL and the in-memory
// fallback store.
type FinanceService struct {
	orders   *repositories.OrderRepository
	expenses *repositories.ExpenseRepository
	tables   *repositories.TableRepository
	dishes   *repositories.DishRepository
}

func NewFinanceService(db *gorm.DB) *FinanceService {
	return &FinanceService{
		orders:   repositories.NewOrderRepository(db),
		expenses: repositories.NewExpenseRepository(db),
		tables:   repositories.NewTableRepository(db),
		dishes:   repositories.NewDishRepository(db),
	}
}

// ---- expenses ----

func (s *FinanceService) CreateExpense(name string, amount decimal.Decimal, category string, spentAt time.Time) (*models.Expense, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &models.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if amount.IsNegative() {
		return nil, &models.ValidationError{Field: "amount", Reason: "must not be negative"}
	}
	if spentAt.IsZero() {
		spentAt = time.Now()
	}

	expense := &models.Expense{
		Name:     strings.TrimSpace(name),
		Amount:   amount,
		Category: category,
		SpentAt:  spentAt,
	}
	if err := s.expenses.Create(expense); err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Expense %q recorded: %s", expense.Name, utils.FormatCurrencyEUR(expense.Amount))
	return expense, nil
}

func (s *FinanceService) ListExpenses() ([]models.Expense, error) {
	return s.expenses.FindAll()
}

func (s *FinanceService) ListExpensesBetween(start, end time.Time) ([]models.Expense, error) {
	return s.expenses.FindBetween(start, end)
}

func (s *FinanceService) DeleteExpense(id uint) error {
	if _, err := s.expenses.FindByID(id); err != nil {
		return err
	}
	return s.expenses.Delete(id)
}

// ---- aggregation ----

// TotalRevenue sums the derived totals of completed orders in [start, end).
func (s *FinanceService) TotalRevenue(start, end time.Time) (decimal.Decimal, error) {
	orders, err := s.orders.FindCompletedBetween(start, end)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for i := range orders {
		total = total.Add(orders[i].TotalPrice())
	}
	return total, nil
}

// RevenueByDay groups completed-order revenue by calendar day (YYYY-MM-DD).
func (s *FinanceService) RevenueByDay(start, end time.Time) (map[string]decimal.Decimal, error) {
	orders, err := s.orders.FindCompletedBetween(start, end)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]decimal.Decimal)
	for i := range orders {
		key := orders[i].CreatedAt.Format("2006-01-02")
		byDay[key] = byDay[key].Add(orders[i].TotalPrice())
	}
	return byDay, nil
}

// RevenueByCategory attributes each item's amount to the category of its
// dish. Items whose dish has been removed from the catalog, or whose dish
// has no category, count under "Uncategorized".
func (s *FinanceService) RevenueByCategory(start, end time.Time) (map[string]decimal.Decimal, error) {
	orders, err := s.orders.FindCompletedBetween(start, end)
	if err != nil {
		return nil, err
	}
	dishes, err := s.dishes.FindAll()
	if err != nil {
		return nil, err
	}

	categories := make(map[uint]string, len(dishes))
	for _, dish := range dishes {
		categories[dish.ID] = dish.Category
	}

	byCategory := make(map[string]decimal.Decimal)
	for i := range orders {
		for _, item := range orders[i].Items {
			category := categories[item.DishID]
			if category == "" {
				category = uncategorized
			}
			byCategory[category] = byCategory[category].Add(item.Subtotal())
		}
	}
	return byCategory, nil
}

// RevenueByTable groups completed-order revenue by table number. Takeaway
// orders (no table) are keyed under "-".
func (s *FinanceService) RevenueByTable(start, end time.Time) (map[string]decimal.Decimal, error) {
	orders, err := s.orders.FindCompletedBetween(start, end)
	if err != nil {
		return nil, err
	}
	tables, err := s.tables.FindAll()
	if err != nil {
		return nil, err
	}

	numbers := make(map[uint]string, len(tables))
	for _, table := range tables {
		numbers[table.ID] = table.Number
	}

	byTable := make(map[string]decimal.Decimal)
	for i := range orders {
		key := "-"
		if orders[i].TableID != nil {
			if number, ok := numbers[*orders[i].TableID]; ok {
				key = number
			}
		}
		byTable[key] = byTable[key].Add(orders[i].TotalPrice())
	}
	return byTable, nil
}

func (s *FinanceService) TotalExpenses(start, end time.Time) (decimal.Decimal, error) {
	expenses, err := s.expenses.FindBetween(start, end)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, expense := range expenses {
		total = total.Add(expense.Amount)
	}
	return total, nil
}

// ExpensesByCategory sums expense amounts per category tag.
func (s *FinanceService) ExpensesByCategory(start, end time.Time) (map[string]decimal.Decimal, error) {
	expenses, err := s.expenses.FindBetween(start, end)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[string]decimal.Decimal)
	for _, expense := range expenses {
		category := expense.Category
		if category == "" {
			category = uncategorized
		}
		byCategory[category] = byCategory[category].Add(expense.Amount)
	}
	return byCategory, nil
}

// Profit is revenue minus expenses over the same period.
func (s *FinanceService) Profit(start, end time.Time) (decimal.Decimal, error) {
	revenue, err := s.TotalRevenue(start, end)
	if err != nil {
		return decimal.Zero, err
	}
	expenses, err := s.TotalExpenses(start, end)
	if err != nil {
		return decimal.Zero, err
	}
	return revenue.Sub(expenses), nil
}

// ---- dashboard ----

type DashboardStats struct {
	PendingOrders   int64  `json:"pending_orders"`
	CompletedOrders int64  `json:"completed_orders"`
	CancelledOrders int64  `json:"cancelled_orders"`
	OccupiedTables  int64  `json:"occupied_tables"`
	AvailableTables int64  `json:"available_tables"`
	TodayRevenue    string `json:"today_revenue"`
	TotalRevenue    string `json:"total_revenue"`
}

// Stats collects the counters shown on the overview screen.
func (s *FinanceService) Stats(now time.Time) (*DashboardStats, error) {
	stats := &DashboardStats{}

	var err error
	if stats.PendingOrders, err = s.orders.CountByStatus(models.OrderStatusPending); err != nil {
		return nil, err
	}
	if stats.CompletedOrders, err = s.orders.CountByStatus(models.OrderStatusCompleted); err != nil {
		return nil, err
	}
	if stats.CancelledOrders, err = s.orders.CountByStatus(models.OrderStatusCancelled); err != nil {
		return nil, err
	}
	if stats.OccupiedTables, err = s.tables.CountOccupied(true); err != nil {
		return nil, err
	}
	if stats.AvailableTables, err = s.tables.CountOccupied(false); err != nil {
		return nil, err
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	today, err := s.TotalRevenue(dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	allTime, err := s.TotalRevenue(time.Unix(0, 0), now.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	stats.TodayRevenue = utils.FormatCurrencyEUR(today)
	stats.TotalRevenue = utils.FormatCurrencyEUR(allTime)
	return stats, nil
}

// ---- export ----

// ExportCSV writes the financial report for [start, end) as CSV: a summary
// block, then revenue per day, then expenses per category.
func (s *FinanceService) ExportCSV(w io.Writer, start, end time.Time) error {
	revenue, err := s.TotalRevenue(start, end)
	if err != nil {
		return err
	}
	expenses, err := s.TotalExpenses(start, end)
	if err != nil {
		return err
	}
	byDay, err := s.RevenueByDay(start, end)
	if err != nil {
		return err
	}
	byCategory, err := s.ExpensesByCategory(start, end)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	records := [][]string{
		{"section", "key", "amount"},
		{"summary", "revenue", revenue.StringFixed(2)},
		{"summary", "expenses", expenses.StringFixed(2)},
		{"summary", "profit", revenue.Sub(expenses).StringFixed(2)},
	}
	for _, day := range sortedKeys(byDay) {
		records = append(records, []string{"revenue_by_day", day, byDay[day].StringFixed(2)})
	}
	for _, category := range sortedKeys(byCategory) {
		records = append(records, []string{"expenses_by_category", category, byCategory[category].StringFixed(2)})
	}

	if err := cw.WriteAll(records); err != nil {
		return err
	}
	return cw.Error()
}

func sortedKeys(m map[string]decimal.Decimal) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
