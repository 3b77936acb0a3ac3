package apitest

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/pulseforge/pulseforge/internal/api"
	"github.com/pulseforge/pulseforge/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

const resetStatus = "if the account exists, a reset email has been sent"

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if !decode(r, &req) || req.Email == "" || req.Name == "" || req.TenantSlug == "" || req.TenantName == "" || len(req.Password) < 6 {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	slug := strings.ToLower(strings.TrimSpace(req.TenantSlug))
	email := strings.ToLower(strings.TrimSpace(req.Email))
	logo := domain.CoalesceStr(req.TenantLogoData, req.TenantLogoURL)
	if logo != "" && !strings.HasPrefix(logo, "data:image/") && !strings.HasPrefix(logo, "http://") && !strings.HasPrefix(logo, "https://") {
		writeError(w, http.StatusBadRequest, "invalid logo upload format")
		return
	}

	s.mu.Lock()
	for _, t := range s.tenants {
		if strings.EqualFold(t.Name, req.TenantName) {
			s.mu.Unlock()
			writeError(w, http.StatusConflict, "organization name already exists")
			return
		}
	}
	for _, a := range s.accounts {
		if a.user.Email == email {
			s.mu.Unlock()
			writeError(w, http.StatusConflict, "email already exists")
			return
		}
	}
	if _, ok := s.tenantBySlug(slug); ok {
		s.mu.Unlock()
		writeError(w, http.StatusConflict, "organization slug already exists")
		return
	}
	s.mu.Unlock()

	u := s.AddUser(slug, strings.TrimSpace(req.TenantName), strings.TrimSpace(req.Name), email, req.Password, domain.RoleOrgAdmin)
	s.mu.Lock()
	for i := range s.tenants {
		if s.tenants[i].Slug == slug {
			s.tenants[i].LogoURL = logo
		}
	}
	s.accounts[len(s.accounts)-1].user.TenantLogo = logo
	u.TenantLogo = logo
	s.mu.Unlock()

	s.respondAuth(w, http.StatusCreated, u)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if !decode(r, &req) || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	slug := strings.ToLower(strings.TrimSpace(req.TenantSlug))
	email := strings.ToLower(strings.TrimSpace(req.Email))

	s.mu.Lock()
	var found *account
	for i := len(s.accounts) - 1; i >= 0; i-- {
		a := s.accounts[i]
		if a.user.Email == email && (slug == "" || a.user.TenantSlug == slug) {
			found = a
			break
		}
	}
	s.mu.Unlock()

	if found == nil || bcrypt.CompareHashAndPassword(found.hash, []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	s.mu.Lock()
	found.lastLogin = s.now()
	u := found.user
	s.mu.Unlock()
	s.respondAuth(w, http.StatusOK, u)
}

func (s *Server) respondAuth(w http.ResponseWriter, status int, u domain.AuthUser) {
	token, err := issueToken(u, s.clock())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "token generation failed")
		return
	}
	writeJSON(w, status, api.AuthResponse{
		Token: token,
		User: api.WireUser{
			ID:         u.ID,
			Name:       u.Name,
			Email:      u.Email,
			TenantSlug: u.TenantSlug,
			TenantName: u.TenantName,
			TenantLogo: u.TenantLogo,
			Role:       string(u.Role),
		},
	})
}

func (s *Server) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var req api.ForgotPasswordRequest
	if !decode(r, &req) || req.Email == "" {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.user.Email == email {
			s.mail = append(s.mail, domain.TestNotification{
				Email:   email,
				Subject: "PulseForge password reset",
				Message: "Your temporary password for " + a.user.TenantName + " has been issued.",
			})
			break
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": resetStatus})
}

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	tenant := callerFrom(r.Context()).tenant
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Project
	for _, p := range s.projects {
		if p.TenantID == tenant {
			out = append(out, p)
		}
	}
	writeJSON(w, http.StatusOK, items(out))
}

func (s *Server) createProject(w http.ResponseWriter, r *http.Request) {
	var in domain.ProjectInput
	if !decode(r, &in) || strings.TrimSpace(in.Name) == "" {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	in.Normalize()
	start, err := time.Parse(domain.DateLayout, in.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "start_date must be YYYY-MM-DD")
		return
	}
	if in.DurationDays < 1 || in.DurationDays > 3650 {
		writeError(w, http.StatusBadRequest, "duration_days must be between 1 and 3650")
		return
	}
	due := start.AddDate(0, 0, in.DurationDays-1)

	s.mu.Lock()
	defer s.mu.Unlock()
	p := domain.Project{
		ID:           s.id(),
		TenantID:     callerFrom(r.Context()).tenant,
		Name:         in.Name,
		Status:       in.Status,
		Assignees:    in.Assignees,
		StartDate:    &start,
		DueDate:      &due,
		DurationDays: in.DurationDays,
		TeamSize:     in.TeamSize,
		CreatedAt:    s.now(),
	}
	s.projects = append([]domain.Project{p}, s.projects...)
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	tenant := callerFrom(r.Context()).tenant
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.TaskItem
	for _, t := range s.tasks {
		if t.TenantID == tenant {
			out = append(out, t)
		}
	}
	writeJSON(w, http.StatusOK, items(out))
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	var in domain.TaskInput
	if !decode(r, &in) || in.ProjectID <= 0 || strings.TrimSpace(in.Title) == "" {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	in.Normalize()
	tenant := callerFrom(r.Context()).tenant

	s.mu.Lock()
	defer s.mu.Unlock()
	var project *domain.Project
	for i := range s.projects {
		if s.projects[i].ID == in.ProjectID && s.projects[i].TenantID == tenant {
			project = &s.projects[i]
		}
	}
	if project == nil {
		writeError(w, http.StatusBadRequest, "project not found for this tenant")
		return
	}
	t := domain.TaskItem{
		ID:          s.id(),
		TenantID:    tenant,
		ProjectID:   project.ID,
		ProjectName: project.Name,
		Title:       in.Title,
		Status:      in.Status,
		Priority:    in.Priority,
		Subtasks:    in.Subtasks,
		CreatedAt:   s.now(),
	}
	s.tasks = append([]domain.TaskItem{t}, s.tasks...)
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) listPosts(w http.ResponseWriter, r *http.Request) {
	tenant := callerFrom(r.Context()).tenant
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.ForumPost
	for _, p := range s.posts {
		if p.TenantID == tenant {
			out = append(out, p)
		}
	}
	writeJSON(w, http.StatusOK, items(out))
}

func (s *Server) createPost(w http.ResponseWriter, r *http.Request) {
	var in domain.ForumPostInput
	if !decode(r, &in) || in.Validate() != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	c := callerFrom(r.Context())
	s.mu.Lock()
	defer s.mu.Unlock()
	p := domain.ForumPost{ID: s.id(), TenantID: c.tenant, AuthorEmail: c.email, Title: in.Title, Body: in.Body, CreatedAt: s.now()}
	s.posts = append([]domain.ForumPost{p}, s.posts...)
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) listIssues(w http.ResponseWriter, r *http.Request) {
	tenant := callerFrom(r.Context()).tenant
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Issue
	for _, i := range s.issues {
		if i.TenantID == tenant {
			out = append(out, i)
		}
	}
	writeJSON(w, http.StatusOK, items(out))
}

func (s *Server) createIssue(w http.ResponseWriter, r *http.Request) {
	var in domain.IssueInput
	if !decode(r, &in) || in.Validate() != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	c := callerFrom(r.Context())
	s.mu.Lock()
	defer s.mu.Unlock()
	issue := domain.Issue{
		ID:             s.id(),
		TenantID:       c.tenant,
		ProjectID:      in.ProjectID,
		Title:          in.Title,
		Description:    in.Description,
		Severity:       in.Severity,
		Status:         "open",
		CreatedByEmail: c.email,
		CreatedAt:      s.now(),
	}
	if in.ProjectID != nil {
		for _, p := range s.projects {
			if p.ID == *in.ProjectID && p.TenantID == c.tenant {
				issue.ProjectName = p.Name
			}
		}
	}
	s.issues = append([]domain.Issue{issue}, s.issues...)
	writeJSON(w, http.StatusCreated, issue)
}

func (s *Server) testNotification(w http.ResponseWriter, r *http.Request) {
	var in domain.TestNotification
	if !decode(r, &in) {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	in.Email = domain.CoalesceStr(in.Email, callerFrom(r.Context()).email)
	if in.Email == "" {
		writeError(w, http.StatusBadRequest, "missing recipient email")
		return
	}
	s.mu.Lock()
	s.mail = append(s.mail, in)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

func (s *Server) supportRequest(w http.ResponseWriter, r *http.Request) {
	var in domain.SupportRequest
	if !decode(r, &in) || in.Validate() != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	s.mu.Lock()
	s.support = append(s.support, in)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

func (s *Server) organizations(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	weekAgo := s.now().AddDate(0, 0, -7)
	out := make([]domain.SystemOrganization, 0, len(s.tenants))
	for _, t := range s.tenants {
		org := domain.SystemOrganization{TenantSlug: t.Slug, TenantName: t.Name}
		for _, a := range s.accounts {
			if a.user.TenantSlug != t.Slug {
				continue
			}
			org.UserCount++
			if a.lastLogin.After(weekAgo) {
				org.ActiveUsers7d++
			}
		}
		for _, p := range s.projects {
			if p.TenantID == t.Slug {
				org.ProjectCount++
			}
		}
		for _, task := range s.tasks {
			if task.TenantID == t.Slug {
				org.TaskCount++
			}
		}
		org.ActiveWorkspace7d = org.ActiveUsers7d > 0
		out = append(out, org)
	}
	writeJSON(w, http.StatusOK, items(out))
}

func (s *Server) analytics(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	a := domain.SystemAnalytics{
		TenantCount:  int64(len(s.tenants)),
		UserCount:    int64(len(s.accounts)),
		ProjectCount: int64(len(s.projects)),
		TaskCount:    int64(len(s.tasks)),
	}
	activeTenants := map[string]bool{}
	for _, acc := range s.accounts {
		if acc.lastLogin.After(now.Add(-24 * time.Hour)) {
			a.ActiveUsers24h++
		}
		if acc.lastLogin.After(now.AddDate(0, 0, -7)) {
			a.ActiveUsers7d++
			activeTenants[acc.user.TenantSlug] = true
		}
	}
	a.ActiveTenants7d = int64(len(activeTenants))
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) listLogs(w http.ResponseWriter, r *http.Request) {
	limit := api.DefaultLogLimit
	if n, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && n > 0 && n <= api.MaxLogLimit {
		limit = n
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.SystemLog, 0, limit)
	for i := len(s.logs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.logs[i])
	}
	writeJSON(w, http.StatusOK, items(out))
}

func (s *Server) listTenants(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, items(append([]domain.SystemTenant(nil), s.tenants...)))
}

func (s *Server) createTenant(w http.ResponseWriter, r *http.Request) {
	var in domain.TenantInput
	if !decode(r, &in) {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	in.Normalize()
	if in.Validate() != nil {
		writeError(w, http.StatusBadRequest, "slug and name are required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tenantBySlug(in.Slug); ok {
		writeError(w, http.StatusConflict, "organization slug already exists")
		return
	}
	t := domain.SystemTenant{ID: s.id(), Slug: in.Slug, Name: in.Name, LogoURL: in.LogoURL, CreatedAt: s.now()}
	s.tenants = append(s.tenants, t)
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) updateTenant(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	var in domain.TenantInput
	if !decode(r, &in) {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	in.Normalize()
	if in.Validate() != nil {
		writeError(w, http.StatusBadRequest, "slug and name are required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tenants {
		if s.tenants[i].ID == id {
			s.tenants[i].Slug = in.Slug
			s.tenants[i].Name = in.Name
			s.tenants[i].LogoURL = in.LogoURL
			writeJSON(w, http.StatusOK, s.tenants[i])
			return
		}
	}
	writeError(w, http.StatusNotFound, "tenant not found")
}

func (s *Server) listUpdates(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, items(append([]domain.SystemUpdate(nil), s.updates...)))
}

func (s *Server) createUpdate(w http.ResponseWriter, r *http.Request) {
	in, ok := s.decodeUpdate(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u := domain.SystemUpdate{
		ID:            s.id(),
		ScheduledDate: in.ScheduledDate,
		Title:         in.Title,
		FeatureBrief:  in.FeatureBrief,
		Expectations:  in.Expectations,
		CreatedBy:     callerFrom(r.Context()).email,
		CreatedAt:     s.now(),
	}
	s.updates = append(s.updates, u)
	writeJSON(w, http.StatusCreated, s.announce(u))
}

func (s *Server) editUpdate(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	in, ok := s.decodeUpdate(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.updates {
		if s.updates[i].ID == id {
			s.updates[i].ScheduledDate = in.ScheduledDate
			s.updates[i].Title = in.Title
			s.updates[i].FeatureBrief = in.FeatureBrief
			s.updates[i].Expectations = in.Expectations
			writeJSON(w, http.StatusOK, s.announce(s.updates[i]))
			return
		}
	}
	writeError(w, http.StatusNotFound, "system update not found")
}

func (s *Server) decodeUpdate(w http.ResponseWriter, r *http.Request) (domain.SystemUpdateInput, bool) {
	var in domain.SystemUpdateInput
	if !decode(r, &in) {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return in, false
	}
	in.Normalize()
	if in.Title == "" || in.FeatureBrief == "" || in.Expectations == "" {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return in, false
	}
	day, err := time.Parse(domain.DateLayout, in.ScheduledDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "scheduled_date must be YYYY-MM-DD")
		return in, false
	}
	now := s.clock()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if !day.After(today) {
		writeError(w, http.StatusBadRequest, "scheduled_date must be after today")
		return in, false
	}
	return in, true
}

// announce mails every org admin about u. Callers hold s.mu.
func (s *Server) announce(u domain.SystemUpdate) domain.SystemUpdateResult {
	res := domain.SystemUpdateResult{Item: u, MailStatus: "sent"}
	for _, a := range s.accounts {
		if a.user.Role.IsSystemAdmin() {
			continue
		}
		res.Recipients++
		res.Sent++
		s.mail = append(s.mail, domain.TestNotification{
			Email:   a.user.Email,
			Subject: "PulseForge update: " + u.Title,
			Message: u.FeatureBrief,
		})
	}
	return res
}
