package handler

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, stateHandler *StateHandler, budgetCategoryHandler *BudgetCategoryHandler, savingsGoalHandler *SavingsGoalHandler, profileHandler *ProfileHandler, scenarioHandler *ScenarioHandler, purchaseHandler *PurchaseHandler, middlewares ...echo.MiddlewareFunc) {
	// API version 1
	api := e.Group("/api/v1", middlewares...)

	api.GET("/state", stateHandler.GetState)

	// Budget Category routes
	budgetCategories := api.Group("/budget-categories")
	budgetCategories.POST("", budgetCategoryHandler.CreateCategory)
	budgetCategories.GET("", budgetCategoryHandler.GetCategories)
	budgetCategories.GET("/totals", budgetCategoryHandler.GetTotals)
	budgetCategories.GET("/:id", budgetCategoryHandler.GetCategory)
	budgetCategories.PUT("/:id", budgetCategoryHandler.UpdateCategory)
	budgetCategories.DELETE("/:id", budgetCategoryHandler.DeleteCategory)

	// Savings Goal routes
	savingsGoal := api.Group("/savings-goal")
	savingsGoal.GET("", savingsGoalHandler.GetGoal)
	savingsGoal.POST("", savingsGoalHandler.CreateGoal)
	savingsGoal.DELETE("", savingsGoalHandler.ResetGoal)
	savingsGoal.POST("/contributions", savingsGoalHandler.Contribute)

	// Profile routes
	profile := api.Group("/profile")
	profile.PUT("/income", profileHandler.UpdateIncome)

	// Scenario routes
	scenarios := api.Group("/scenarios")
	scenarios.GET("/snapshot", scenarioHandler.GetSnapshot)
	scenarios.POST("/evaluate", scenarioHandler.Evaluate)
	scenarios.GET("/presets", scenarioHandler.GetPresets)

	// Purchase routes
	purchases := api.Group("/purchases")
	purchases.POST("/estimate", purchaseHandler.Estimate)
}
