package handlers

import (
	"faceswapadmin/internal/config"
	"faceswapadmin/internal/remote"
	"faceswapadmin/internal/services"
)

type Deps struct {
	AuthHandler      *AuthHandler
	CategoryHandler  *CategoryHandler
	ImageHandler     *ImageHandler
	MessageHandler   *MessageHandler
	DashboardHandler *DashboardHandler
}

func NewDeps(cfg config.Config, api *remote.Client, auth *services.AuthService, ws *services.Workspaces) *Deps {
	catalogSvc := services.NewCatalogService(api)
	notifySvc := services.NewNotificationService(api, cfg.TopicSlug)
	reportSvc := services.NewReportService(api)

	return &Deps{
		AuthHandler:      &AuthHandler{Auth: auth, Workspaces: ws},
		CategoryHandler:  &CategoryHandler{Catalog: catalogSvc, Workspaces: ws},
		ImageHandler:     &ImageHandler{Catalog: catalogSvc, Workspaces: ws, API: api, MaxUploadBytes: cfg.MaxUploadBytes},
		MessageHandler:   &MessageHandler{Notify: notifySvc, Workspaces: ws, API: api, MaxUploadBytes: cfg.MaxUploadBytes},
		DashboardHandler: &DashboardHandler{Reports: reportSvc, Workspaces: ws},
	}
}
