// SPDX-License-Identifier: GPL-3.0-or-later
package web

import (
	"context"
	"crypto/subtle"
	"net/http"

	"github.com/mvelho/go-mail-triage/domain"
	"github.com/mvelho/go-mail-triage/log"
	"github.com/mvelho/go-mail-triage/unsubscribe"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// AuthFunc resolves the authenticated owner for a request. The login flow
// itself lives outside this service; deployments plug in whatever session
// handling they use.
type AuthFunc func(c *gin.Context) (string, bool)

// Syncer schedules ingestion runs.
type Syncer interface {
	SyncOwner(ctx context.Context, ownerEmail string) error
	SyncAll(ctx context.Context) error
}

// defaultCategories is installed for owners registering their first
// mailbox, so ingestion has somewhere to sort into before any curation.
var defaultCategories = []*domain.Category{
	{Name: "Important", Description: "Personal or time-sensitive emails that need attention."},
	{Name: "Newsletters", Description: "Recurring digests, publications and mailing lists."},
	{Name: "Promotions", Description: "Marketing emails, offers and sales."},
}

type Server struct {
	store        domain.Store
	syncer       Syncer
	connector    domain.MailConnector
	unsubscriber domain.Unsubscriber
	queue        domain.TaskQueue
	auth         AuthFunc
	cronSecret   string

	l *logrus.Logger
}

func NewServer(store domain.Store, syncer Syncer, connector domain.MailConnector, unsubscriber domain.Unsubscriber, queue domain.TaskQueue, auth AuthFunc, cronSecret string) *Server {
	return &Server{
		store:        store,
		syncer:       syncer,
		connector:    connector,
		unsubscriber: unsubscriber,
		queue:        queue,
		auth:         auth,
		cronSecret:   cronSecret,
		l:            log.Logger(log.LOG_WEB),
	}
}

func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.POST("/sync", s.triggerSync)
	router.POST("/sync/cron", s.triggerCronSync)
	router.GET("/sync/status", s.syncStatus)

	router.GET("/categories", s.listCategories)
	router.POST("/categories", s.createCategory)
	router.GET("/categories/:id/emails", s.listEmails)
	router.POST("/categories/:id/actions", s.categoryAction)

	router.POST("/accounts", s.registerAccount)

	return router
}

func (s *Server) owner(c *gin.Context) (string, bool) {
	owner, ok := s.auth(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	}
	return owner, ok
}

func (s *Server) triggerSync(c *gin.Context) {
	owner, ok := s.owner(c)
	if !ok {
		return
	}

	// Runs outlive the request, so they cannot hang off its context
	err := s.syncer.SyncOwner(context.Background(), owner)
	if err != nil {
		s.l.WithFields(logrus.Fields{"owner": owner, "error": err}).Error("Could not schedule sync")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not schedule sync"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": domain.StatusProcessing})
}

func (s *Server) triggerCronSync(c *gin.Context) {
	secret := c.GetHeader("X-Cron-Secret")
	if subtle.ConstantTimeCompare([]byte(secret), []byte(s.cronSecret)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid cron secret"})
		return
	}

	err := s.syncer.SyncAll(context.Background())
	if err != nil {
		s.l.WithField("error", err).Error("Could not schedule sweep")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not schedule sweep"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "scheduled"})
}

func (s *Server) syncStatus(c *gin.Context) {
	owner, ok := s.owner(c)
	if !ok {
		return
	}

	status, err := s.store.SyncStatus(owner)
	if err != nil {
		s.l.WithFields(logrus.Fields{"owner": owner, "error": err}).Error("Could not load sync status")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load sync status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": status})
}

type categoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) listCategories(c *gin.Context) {
	owner, ok := s.owner(c)
	if !ok {
		return
	}

	categories, err := s.store.CategoriesByOwner(owner)
	if err != nil {
		s.l.WithFields(logrus.Fields{"owner": owner, "error": err}).Error("Could not load categories")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load categories"})
		return
	}

	response := make([]*categoryResponse, 0, len(categories))
	for _, category := range categories {
		response = append(response, &categoryResponse{ID: category.ID, Name: category.Name, Description: category.Description})
	}

	c.JSON(http.StatusOK, response)
}

type createCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) createCategory(c *gin.Context) {
	owner, ok := s.owner(c)
	if !ok {
		return
	}

	request := &createCategoryRequest{}
	err := c.ShouldBindJSON(request)
	if err != nil || len(request.Name) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	existing, err := s.store.CategoriesByOwner(owner)
	if err != nil {
		s.l.WithFields(logrus.Fields{"owner": owner, "error": err}).Error("Could not load categories")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load categories"})
		return
	}
	for _, category := range existing {
		if category.Name == request.Name {
			c.JSON(http.StatusConflict, gin.H{"error": "category already exists"})
			return
		}
	}

	category := &domain.Category{
		ID:          uuid.NewString(),
		OwnerEmail:  owner,
		Name:        request.Name,
		Description: request.Description,
	}
	err = s.store.SaveCategory(category)
	if err != nil {
		s.l.WithFields(logrus.Fields{"owner": owner, "error": err}).Error("Could not save category")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save category"})
		return
	}

	c.JSON(http.StatusCreated, &categoryResponse{ID: category.ID, Name: category.Name, Description: category.Description})
}

type registerAccountRequest struct {
	LinkedEmail string `json:"linked_email"`
	IsPrimary   bool   `json:"is_primary"`
	TokenData   string `json:"token_data"`
}

// registerAccount stores a mailbox credential obtained by an external OAuth
// flow. First-time owners also get the default category set installed.
func (s *Server) registerAccount(c *gin.Context) {
	owner, ok := s.owner(c)
	if !ok {
		return
	}

	request := &registerAccountRequest{}
	err := c.ShouldBindJSON(request)
	if err != nil || len(request.LinkedEmail) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "linked_email is required"})
		return
	}

	_, err = domain.DecodeTokenData(request.TokenData)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token_data is not a usable credential"})
		return
	}

	categories, err := s.store.CategoriesByOwner(owner)
	if err != nil {
		s.l.WithFields(logrus.Fields{"owner": owner, "error": err}).Error("Could not load categories")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not register account"})
		return
	}

	err = s.store.SaveLinkedAccount(&domain.LinkedAccount{
		OwnerEmail:  owner,
		LinkedEmail: request.LinkedEmail,
		TokenData:   request.TokenData,
		IsPrimary:   request.IsPrimary,
	})
	if err != nil {
		s.l.WithFields(logrus.Fields{"owner": owner, "mailbox": request.LinkedEmail, "error": err}).Warn("Could not link mailbox")
		c.JSON(http.StatusConflict, gin.H{"error": "mailbox is already linked"})
		return
	}

	if len(categories) == 0 {
		for _, seed := range defaultCategories {
			err := s.store.SaveCategory(&domain.Category{
				ID:          uuid.NewString(),
				OwnerEmail:  owner,
				Name:        seed.Name,
				Description: seed.Description,
			})
			if err != nil {
				s.l.WithFields(logrus.Fields{"owner": owner, "category": seed.Name, "error": err}).Error("Could not seed category")
			}
		}
	}

	c.JSON(http.StatusCreated, gin.H{"linked_email": request.LinkedEmail})
}

type emailResponse struct {
	ID          string `json:"id"`
	Summary     string `json:"summary"`
	Snippet     string `json:"snippet"`
	SentDate    string `json:"sent_date"`
	FromAddress string `json:"from_address"`
	CategoryID  string `json:"category_id"`
}

func (s *Server) listEmails(c *gin.Context) {
	owner, ok := s.owner(c)
	if !ok {
		return
	}

	category, ok := s.ownedCategory(c, owner)
	if !ok {
		return
	}

	emails, err := s.store.EmailsByCategory(owner, category.ID)
	if err != nil {
		s.l.WithFields(logrus.Fields{"owner": owner, "error": err}).Error("Could not load emails")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load emails"})
		return
	}

	response := make([]*emailResponse, 0, len(emails))
	for _, email := range emails {
		response = append(response, &emailResponse{
			ID:          email.ID,
			Summary:     email.Summary,
			Snippet:     email.Snippet,
			SentDate:    email.SentDate,
			FromAddress: email.FromAddress,
			CategoryID:  email.CategoryID,
		})
	}

	c.JSON(http.StatusOK, response)
}

const (
	ActionDelete      = "delete"
	ActionUnsubscribe = "unsubscribe"
)

type actionRequest struct {
	Action   string   `json:"action"`
	EmailIDs []string `json:"email_ids"`
}

func (s *Server) categoryAction(c *gin.Context) {
	owner, ok := s.owner(c)
	if !ok {
		return
	}

	category, ok := s.ownedCategory(c, owner)
	if !ok {
		return
	}

	request := &actionRequest{}
	err := c.ShouldBindJSON(request)
	if err != nil || len(request.EmailIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email_ids is required"})
		return
	}

	emails, err := s.store.EmailsByIDs(owner, request.EmailIDs)
	if err != nil {
		s.l.WithFields(logrus.Fields{"owner": owner, "error": err}).Error("Could not load emails")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load emails"})
		return
	}

	// Only records inside this category are acted on; stray ids are dropped
	selected := make([]*domain.Email, 0, len(emails))
	for _, email := range emails {
		if email.CategoryID == category.ID {
			selected = append(selected, email)
		}
	}

	switch request.Action {
	case ActionDelete:
		s.deleteEmails(c, owner, selected)
	case ActionUnsubscribe:
		s.unsubscribeEmails(c, owner, selected)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown action"})
	}
}

func (s *Server) deleteEmails(c *gin.Context, owner string, emails []*domain.Email) {
	ids := make([]string, 0, len(emails))
	for _, email := range emails {
		ids = append(ids, email.ID)
	}

	if len(ids) > 0 {
		err := s.store.DeleteEmails(owner, ids)
		if err != nil {
			s.l.WithFields(logrus.Fields{"owner": owner, "error": err}).Error("Could not delete emails")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete emails"})
			return
		}

		// Remote deletion is best effort; the local rows are already gone
		s.remoteDelete(c.Request.Context(), owner, ids)
	}

	c.JSON(http.StatusOK, gin.H{"deleted": len(ids)})
}

func (s *Server) remoteDelete(ctx context.Context, owner string, ids []string) {
	accounts, err := s.store.LinkedAccountsByOwner(owner)
	if err != nil {
		s.l.WithFields(logrus.Fields{"owner": owner, "error": err}).Warn("Could not load linked accounts for remote delete")
		return
	}

	var primary *domain.LinkedAccount
	for _, account := range accounts {
		if account.IsPrimary {
			primary = account
			break
		}
	}
	if primary == nil {
		s.l.WithField("owner", owner).Warn("Owner has no primary mailbox, skipping remote delete")
		return
	}

	token, err := domain.DecodeTokenData(primary.TokenData)
	if err != nil {
		s.l.WithFields(logrus.Fields{"owner": owner, "error": err}).Warn("Could not decode primary credential")
		return
	}

	source, err := s.connector.Connect(ctx, token)
	if err != nil {
		s.l.WithFields(logrus.Fields{"owner": owner, "error": err}).Warn("Could not connect primary mailbox")
		return
	}

	err = source.BatchDelete(ctx, ids)
	if err != nil {
		s.l.WithFields(logrus.Fields{"owner": owner, "error": err}).Warn("Could not delete messages remotely")
	}
}

func (s *Server) unsubscribeEmails(c *gin.Context, owner string, emails []*domain.Email) {
	submitted := 0
	for _, email := range emails {
		link, found := unsubscribe.UnsubscribeLink(email.Body)
		if !found {
			s.l.WithFields(logrus.Fields{"owner": owner, "email": email.ID}).Debug("No opt-out link found")
			continue
		}

		s.queue.Submit(func() {
			err := s.unsubscriber.Unsubscribe(context.Background(), link)
			if err != nil {
				s.l.WithFields(logrus.Fields{"owner": owner, "link": link, "error": err}).Warn("Opt-out attempt failed")
			}
		})
		submitted++
	}

	c.JSON(http.StatusAccepted, gin.H{"submitted": submitted})
}

func (s *Server) ownedCategory(c *gin.Context, owner string) (*domain.Category, bool) {
	categories, err := s.store.CategoriesByOwner(owner)
	if err != nil {
		s.l.WithFields(logrus.Fields{"owner": owner, "error": err}).Error("Could not load categories")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load categories"})
		return nil, false
	}

	id := c.Param("id")
	for _, category := range categories {
		if category.ID == id {
			return category, true
		}
	}

	c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
	return nil, false
}
