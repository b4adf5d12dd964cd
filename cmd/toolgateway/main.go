package main

import "github.com/cleitonmarx/symbiont-tool-gateway/internal/app"

func main() {
	err := app.NewToolGatewayApp().
		Introspect(&app.ReportLoggerIntrospector{}).
		Run()
	if err != nil {
		panic(err)
	}
}
