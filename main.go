// SPDX-License-Identifier: GPL-3.0-or-later
package main

import (
	"github.com/mvelho/go-mail-triage/classifier/gemini"
	"github.com/mvelho/go-mail-triage/config"
	"github.com/mvelho/go-mail-triage/gmailconnection"
	"github.com/mvelho/go-mail-triage/log"
	"github.com/mvelho/go-mail-triage/persistence"
	"github.com/mvelho/go-mail-triage/scheduler"
	"github.com/mvelho/go-mail-triage/triage"
	"github.com/mvelho/go-mail-triage/unsubscribe"
	"github.com/mvelho/go-mail-triage/web"

	"github.com/gin-gonic/gin"
)

func main() {
	log.InitLogging("debug")
	logger := log.Logger(log.LOG_MAIN)

	conf, err := config.ReadConfig("config.toml")
	if err != nil {
		logger.WithField("error", err).Fatal("Could not load config")
	}

	if conf.Loglevel != nil {
		log.SetLogLevel(*conf.Loglevel)
	}

	p, err := persistence.NewPersistence(conf.Database)
	if err != nil {
		logger.WithField("error", err).Fatal("Could not connect to database")
	}
	defer p.Close()

	connector := gmailconnection.NewConnector(conf)
	classifier := gemini.NewGemini(conf)

	t, err := triage.NewTriage(p, connector, classifier, triage.MaxMessages(int64(conf.MaxMessagesPerRun)))
	if err != nil {
		logger.WithField("error", err).Fatal("Could not start triage")
	}

	pool := scheduler.NewWorkerPool(conf.Workers)
	defer pool.Stop()

	sched := scheduler.NewScheduler(p, t, pool)
	agent := unsubscribe.NewAgent()

	// Authentication is delegated to a fronting proxy that asserts the
	// owner identity per request
	auth := func(c *gin.Context) (string, bool) {
		owner := c.GetHeader("X-Owner-Email")
		return owner, len(owner) > 0
	}

	server := web.NewServer(p, sched, connector, agent, pool, auth, conf.CronSecret)

	logger.WithField("listen", conf.ListenAddr).Info("Starting server")
	err = server.Router().Run(conf.ListenAddr)
	if err != nil {
		logger.WithField("error", err).Fatal("Server stopped")
	}
}
