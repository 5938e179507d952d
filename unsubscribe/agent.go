// SPDX-License-Identifier: GPL-3.0-or-later
package unsubscribe

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mvelho/go-mail-triage/log"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/sirupsen/logrus"
)

const (
	PageTimeout    = 30 * time.Second
	ConfirmTimeout = 5 * time.Second
)

// confirmPattern matches the confirmation control many opt-out pages
// require a click on after loading.
const confirmPattern = `(?i)unsubscribe|opt.?out|confirm`

// Agent drives opt-out links in a headless browser. Each call launches a
// fresh browser with a throwaway profile so no state leaks between
// senders.
type Agent struct {
	l *logrus.Logger
}

func NewAgent() *Agent {
	return &Agent{
		l: log.Logger(log.LOG_UNSUBSCRIBE),
	}
}

// Unsubscribe opens the link and clicks a confirmation control when one is
// present. Most opt-out pages complete on load alone, so a missing control
// is not a failure; only not reaching the page is.
func (a *Agent) Unsubscribe(ctx context.Context, link string) error {
	a.l.WithField("link", link).Info("Opening opt-out link")

	profileDir, err := os.MkdirTemp("", "triage-unsubscribe-*")
	if err != nil {
		return fmt.Errorf("could not create browser profile: %w", err)
	}
	defer func() {
		removeErr := os.RemoveAll(profileDir)
		if removeErr != nil {
			a.l.WithField("error", removeErr).Warn("Could not remove browser profile")
		}
	}()

	controlURL, err := launcher.New().
		Headless(true).
		NoSandbox(true).
		UserDataDir(profileDir).
		Launch()
	if err != nil {
		return fmt.Errorf("could not launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	err = browser.Connect()
	if err != nil {
		return fmt.Errorf("could not connect to browser: %w", err)
	}
	defer func() { _ = browser.Close() }()

	page, err := browser.Timeout(PageTimeout).Page(proto.TargetCreateTarget{URL: link})
	if err != nil {
		return fmt.Errorf("could not open opt-out page: %w", err)
	}
	defer func() { _ = page.Close() }()

	err = page.Timeout(PageTimeout).WaitLoad()
	if err != nil {
		return fmt.Errorf("could not load opt-out page: %w", err)
	}

	confirm, err := page.Timeout(ConfirmTimeout).ElementR(`button, input[type="submit"], a`, confirmPattern)
	if err != nil {
		a.l.WithField("link", link).Debug("No confirmation control found, assuming opt-out completed on load")
		return nil
	}

	err = confirm.Click(proto.InputMouseButtonLeft, 1)
	if err != nil {
		a.l.WithFields(logrus.Fields{"link": link, "error": err}).Warn("Could not click confirmation control")
		return nil
	}

	a.l.WithField("link", link).Info("Clicked opt-out confirmation")
	return nil
}
