package main

import (
	"net/http"

	"github.com/bottegalab/gestionale/internal/config"
	"github.com/bottegalab/gestionale/internal/db"
	"github.com/bottegalab/gestionale/internal/mail"
	"github.com/bottegalab/gestionale/internal/services"
	"github.com/bottegalab/gestionale/internal/web"
)

func main() {
	config.Load()
	log := config.Logger()

	if err := db.Init(config.DBPath()); err != nil {
		log.WithError(err).Fatal("db init")
	}

	mailer := mail.New()
	services.StartRenewalReminderLoop(db.Conn(), mailer)

	addr := config.Addr()
	log.WithField("addr", addr).Info(config.AppName() + " listening")
	if err := http.ListenAndServe(addr, web.Router(mailer)); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
