package main

import "dermacare/internal/app"

// @title           DermaCare API
// @version         1.0
// @description     Skin-lesion triage backend: OTP-gated registration, classification, hospital ranking and a safety-filtered chat advisor.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
