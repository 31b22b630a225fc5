package api

import (
	"net/http"

	"github.com/openbiodata/beacon-api/internal/beacon/catalog"
	"github.com/openbiodata/beacon-api/internal/beacon/model"
)

func (a *API) infoMeta() model.InfoMeta {
	return model.InfoMeta{
		BeaconID:        a.cfg.BeaconID,
		APIVersion:      a.cfg.APIVersion,
		ReturnedSchemas: []model.SchemaReference{},
	}
}

// Info serves /api/info with the beacon's identity.
func (a *API) Info() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		info := model.BeaconInfo{
			ID:          a.cfg.BeaconID,
			Name:        a.cfg.BeaconName,
			APIVersion:  a.cfg.APIVersion,
			Environment: a.cfg.Environment,
			Organization: model.Organization{
				ID:          a.cfg.Organization.ID,
				Name:        a.cfg.Organization.Name,
				Description: a.cfg.Organization.Description,
				Address:     a.cfg.Organization.Address,
				WelcomeURL:  a.cfg.Organization.WelcomeURL,
				ContactURL:  a.cfg.Organization.ContactURL,
				LogoURL:     a.cfg.Organization.LogoURL,
			},
			Description:    a.cfg.BeaconDescription,
			Version:        a.cfg.BeaconVersion,
			WelcomeURL:     a.cfg.WelcomeURL,
			AlternativeURL: a.cfg.AlternativeURL,
			CreateDateTime: a.cfg.CreateDateTime,
			UpdateDateTime: a.cfg.UpdateDateTime,
		}
		writeJSON(w, http.StatusOK, model.InfoResponse{Meta: a.infoMeta(), Response: info})
	}
}

// Configuration serves /api/configuration.
func (a *API) Configuration() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, model.InfoResponse{
			Meta:     a.infoMeta(),
			Response: catalog.Configuration(a.cfg.Environment),
		})
	}
}

// EntryTypes serves /api/entry_types.
func (a *API) EntryTypes() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, model.InfoResponse{
			Meta:     a.infoMeta(),
			Response: catalog.EntryTypesResponse(),
		})
	}
}

// Map serves /api/map with endpoint URLs rooted at the request host.
func (a *API) Map() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, model.InfoResponse{
			Meta:     a.infoMeta(),
			Response: catalog.MapResponse(baseURL(r)),
		})
	}
}

// MonitorHealth serves /api/monitor/health.
func (a *API) MonitorHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// Root points callers at the informational endpoints.
func (a *API) Root() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"name":       a.cfg.BeaconName,
			"apiVersion": a.cfg.APIVersion,
			"endpoints": map[string]string{
				"info":          "/api/info",
				"configuration": "/api/configuration",
				"entryTypes":    "/api/entry_types",
				"map":           "/api/map",
			},
		})
	}
}

func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if fwd := r.Header.Get("X-Forwarded-Proto"); fwd != "" {
		scheme = fwd
	}
	return scheme + "://" + r.Host
}
