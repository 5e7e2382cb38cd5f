package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/allxdamnxday/memory-grove-splash-sub000/adapters/minimax"
	"github.com/allxdamnxday/memory-grove-splash-sub000/domain/entities"
	"github.com/allxdamnxday/memory-grove-splash-sub000/domain/repositories"
	"github.com/allxdamnxday/memory-grove-splash-sub000/internal/audio"
	"github.com/allxdamnxday/memory-grove-splash-sub000/internal/auth"
	"github.com/allxdamnxday/memory-grove-splash-sub000/usecase"
)

// Handler bundles the voice services and repositories behind the HTTP
// surface.
type Handler struct {
	clone     *usecase.CloneService
	synthesis *usecase.SynthesisService
	profiles  repositories.VoiceProfileRepository
	memories  repositories.MemoryRepository
	logger    *zap.Logger
}

// NewHandler creates the API handler.
func NewHandler(
	clone *usecase.CloneService,
	synthesis *usecase.SynthesisService,
	profiles repositories.VoiceProfileRepository,
	memories repositories.MemoryRepository,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		clone:     clone,
		synthesis: synthesis,
		profiles:  profiles,
		memories:  memories,
		logger:    logger,
	}
}

// InitRoutes initializes all API routes
func InitRoutes(e *echo.Echo, h *Handler) {
	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"service": "memory-grove-voice",
		})
	})

	// API v1 routes, all user-scoped
	v1 := e.Group("/api/v1", h.requireUser)

	v1.GET("/voice/profiles", h.listProfiles)
	v1.POST("/voice/profiles", h.createProfile)
	v1.DELETE("/voice/profiles/:id", h.deleteProfile)
	v1.POST("/voice/profiles/:id/consent", h.recordConsent)

	v1.POST("/voice/clones", h.initiateClone)
	v1.GET("/voice/clones/:id", h.cloneStatus)
	v1.POST("/voice/synthesize", h.synthesize)

	v1.GET("/memories", h.listMemories)
	v1.DELETE("/memories/:id", h.deleteMemory)
}

// requireUser resolves the authenticated user from the bearer token and
// rejects the request otherwise.
func (h *Handler) requireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return c.JSON(http.StatusUnauthorized, ErrorResponse{
				Error:   "missing_token",
				Message: "Bearer token is required",
			})
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			h.logger.Warn("Rejected invalid token", zap.Error(err))
			return c.JSON(http.StatusUnauthorized, ErrorResponse{
				Error:   "invalid_token",
				Message: "Invalid or expired token",
			})
		}

		c.Set("user_id", claims.UserID)
		return next(c)
	}
}

func userID(c echo.Context) string {
	id, _ := c.Get("user_id").(string)
	return id
}

func (h *Handler) listProfiles(c echo.Context) error {
	profiles, err := h.profiles.ListByUser(c.Request().Context(), userID(c))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, profiles)
}

func (h *Handler) createProfile(c echo.Context) error {
	var req CreateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_request", Message: "Invalid request format"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing_fields", Message: "Name is required"})
	}

	voiceID := req.MinimaxVoiceID
	if voiceID == "" {
		voiceID = generateVoiceID()
	}

	model := req.Model
	if model == "" {
		model = entities.VoiceModelStandard
	}

	profile := &entities.VoiceProfile{
		ID:             uuid.NewString(),
		UserID:         userID(c),
		Name:           req.Name,
		MinimaxVoiceID: voiceID,
		Model:          model,
		TrainingStatus: entities.TrainingStatusPending,
		IsActive:       true,
	}
	if err := profile.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation_failed", Message: err.Error()})
	}

	if err := h.profiles.Create(c.Request().Context(), profile); err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, profile)
}

func (h *Handler) deleteProfile(c echo.Context) error {
	ctx := c.Request().Context()
	profileID := c.Param("id")

	profile, err := h.profiles.GetByID(ctx, userID(c), profileID)
	if err != nil {
		return h.writeError(c, err)
	}

	// Deletion is blocked while synthesized memories still reference the
	// profile.
	count, err := h.memories.CountByVoiceProfile(ctx, profile.ID)
	if err != nil {
		return h.writeError(c, err)
	}
	if count > 0 {
		return h.writeError(c, entities.ErrMemoryInUse)
	}

	if err := h.profiles.Delete(ctx, userID(c), profile.ID); err != nil {
		return h.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) recordConsent(c echo.Context) error {
	var req ConsentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_request", Message: "Invalid request format"})
	}

	ctx := c.Request().Context()
	profile, err := h.profiles.GetByID(ctx, userID(c), c.Param("id"))
	if err != nil {
		return h.writeError(c, err)
	}

	profile.ConsentGiven = req.Consent
	if req.Consent {
		now := time.Now()
		profile.ConsentAt = &now
	} else {
		profile.ConsentAt = nil
	}

	if err := h.profiles.Update(ctx, profile); err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *Handler) initiateClone(c echo.Context) error {
	var req InitiateCloneRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_request", Message: "Invalid request format"})
	}
	if req.VoiceProfileID == "" || req.MemoryID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "missing_fields",
			Message: "voice_profile_id and memory_id are required",
		})
	}

	profile, err := h.clone.InitiateClone(c.Request().Context(), userID(c), req.VoiceProfileID, req.MemoryID)
	if err != nil {
		return h.writeError(c, err)
	}

	return c.JSON(http.StatusOK, CloneResponse{
		Status:         string(profile.TrainingStatus),
		VoiceProfileID: profile.ID,
		MinimaxVoiceID: profile.MinimaxVoiceID,
	})
}

func (h *Handler) cloneStatus(c echo.Context) error {
	profile, err := h.clone.CloneStatus(c.Request().Context(), userID(c), c.Param("id"))
	if err != nil {
		return h.writeError(c, err)
	}

	return c.JSON(http.StatusOK, CloneResponse{
		Status:         string(profile.TrainingStatus),
		VoiceProfileID: profile.ID,
		MinimaxVoiceID: profile.MinimaxVoiceID,
		Error:          profile.TrainingError,
	})
}

func (h *Handler) synthesize(c echo.Context) error {
	var req SynthesizeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_request", Message: "Invalid request format"})
	}
	if req.VoiceProfileID == "" || req.Text == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "missing_fields",
			Message: "voice_profile_id and text are required",
		})
	}

	result, err := h.synthesis.Synthesize(c.Request().Context(), userID(c), usecase.SynthesizeRequest{
		VoiceProfileID:    req.VoiceProfileID,
		Text:              req.Text,
		Emotion:           req.Emotion,
		Speed:             req.Speed,
		Volume:            req.Volume,
		Pitch:             req.Pitch,
		SaveAsMemory:      req.SaveAsMemory,
		MemoryTitle:       req.MemoryTitle,
		MemoryDescription: req.MemoryDescription,
	})
	if err != nil {
		return h.writeError(c, err)
	}

	resp := SynthesizeResponse{
		SynthesisJobID: result.Job.ID,
		AudioURL:       result.AudioURL,
		Duration:       result.Job.DurationSecs,
	}
	if result.Memory != nil {
		resp.MemoryID = &result.Memory.ID
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) listMemories(c echo.Context) error {
	memories, err := h.memories.ListByUser(c.Request().Context(), userID(c))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, memories)
}

func (h *Handler) deleteMemory(c echo.Context) error {
	if err := h.memories.Delete(c.Request().Context(), userID(c), c.Param("id")); err != nil {
		return h.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// writeError maps domain and provider errors onto the three user-visible
// categories: fix your input (4xx), try again shortly (502), or contact
// support (503).
func (h *Handler) writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, entities.ErrProfileNotFound), errors.Is(err, entities.ErrMemoryNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not_found", Message: err.Error()})

	case errors.Is(err, entities.ErrTrainingInProgress), errors.Is(err, entities.ErrTrainingAlreadyDone):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: "training_conflict", Message: err.Error()})

	case errors.Is(err, entities.ErrConsentRequired):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "consent_required", Message: err.Error()})

	case errors.Is(err, entities.ErrMemoryInUse):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: "profile_in_use", Message: err.Error()})

	case errors.Is(err, entities.ErrVoiceNotReady),
		errors.Is(err, entities.ErrDurationOutOfRange),
		errors.Is(err, entities.ErrInvalidVoiceID):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation_failed", Message: err.Error()})

	case errors.Is(err, audio.ErrNotMP3):
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: "provider_error", Message: err.Error()})
	}

	switch minimax.KindOf(err) {
	case minimax.KindValidation:
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation_failed", Message: err.Error()})
	case minimax.KindConfig, minimax.KindAuth:
		// Operators can tell the two apart from logs; users just need to
		// know the feature is unavailable.
		h.logger.Error("Voice provider unavailable", zap.Error(err))
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error:   "service_unavailable",
			Message: "Voice service is not available, please contact support",
		})
	case minimax.KindTransport, minimax.KindProvider:
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: "provider_error", Message: err.Error()})
	}

	h.logger.Error("Unhandled error", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal_error", Message: "Something went wrong"})
}

// generateVoiceID produces a provider-conforming voice identifier: a
// letter-led alphanumeric string of at least 8 characters.
func generateVoiceID() string {
	return "Grove" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}
