package api

import (
	"net/http"

	"github.com/AlexZinkM/votechain/internal/handler"
	"github.com/AlexZinkM/votechain/internal/wallet"
	"github.com/AlexZinkM/votechain/votechain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// SetupRouter sets up router with handlers
func SetupRouter(app *votechain.App, keyFilePath string, prompter wallet.Prompter, gatherer prometheus.Gatherer) (http.Handler, error) {
	walletHandler, err := handler.NewWalletHandler(app, keyFilePath, prompter)
	if err != nil {
		return nil, err
	}
	dashboardHandler := handler.NewDashboardHandler(app)
	actionHandler := handler.NewActionHandler(app)

	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Metrics
	if gatherer != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	// Wallet endpoints
	mux.HandleFunc("/wallet", walletHandler.Status)
	mux.HandleFunc("/wallet/generate", walletHandler.Generate)
	mux.HandleFunc("/wallet/connect", walletHandler.Connect)

	// Dashboard endpoints
	mux.HandleFunc("/dashboard", dashboardHandler.Get)
	mux.HandleFunc("/dashboard/banner/dismiss", dashboardHandler.DismissBanner)
	mux.HandleFunc("/reputation", dashboardHandler.Reputation)

	// Action endpoints
	mux.HandleFunc("/proposals", actionHandler.CreateProposal)
	mux.HandleFunc("/proposals/vote", actionHandler.Vote)
	mux.HandleFunc("/tokens/mint", actionHandler.Mint)

	return mux, nil
}
