package main

import "fintrack/cmd"

// @title fintrack API
// @version 1.0
// @description Personal finance tracking: transactions, budgets and dashboard statistics.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cmd.Execute()
}
