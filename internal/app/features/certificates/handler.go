// internal/app/features/certificates/handler.go
package certificates

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	certificatestore "github.com/dalemusser/coursehub/internal/app/store/certificates"
	enrollmentstore "github.com/dalemusser/coursehub/internal/app/store/enrollments"
	"github.com/dalemusser/coursehub/internal/app/store/queries/enrolled"
	"github.com/dalemusser/coursehub/internal/app/system/auth"
	"github.com/dalemusser/coursehub/internal/app/system/httpjson"
	"github.com/dalemusser/coursehub/internal/app/system/timeouts"
)

// Handler serves certificate uploads and the signed-in user's certificate
// list. Files land on local disk under UploadDir and are served back at
// UploadURL by the static file route.
type Handler struct {
	DB           *mongo.Database
	Enrollments  *enrollmentstore.Store
	Certificates *certificatestore.Store
	UploadDir    string
	UploadURL    string
	Log          *zap.Logger
}

func NewHandler(db *mongo.Database, enrollments *enrollmentstore.Store, certificates *certificatestore.Store, uploadDir, uploadURL string, logger *zap.Logger) *Handler {
	return &Handler{
		DB:           db,
		Enrollments:  enrollments,
		Certificates: certificates,
		UploadDir:    uploadDir,
		UploadURL:    strings.TrimSuffix(uploadURL, "/"),
		Log:          logger,
	}
}

// HandleUpload handles POST /certificates/{enrollmentId} with a multipart
// "certificate" file field. Uploading again for the same enrollment
// replaces the stored record.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	enrollmentID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "enrollmentId"))
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "Enrollment not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Enrollments.GetByID(ctx, enrollmentID); err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, http.StatusNotFound, "Enrollment not found")
			return
		}
		h.Log.Error("enrollment lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not save certificate")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Certificate file is required")
		return
	}
	file, header, err := r.FormFile("certificate")
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Certificate file is required")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExts[ext] {
		httpjson.Error(w, http.StatusBadRequest, "Only PDF and image files are accepted")
		return
	}

	stored, err := saveUpload(h.UploadDir, header.Filename, file)
	if err != nil {
		h.Log.Error("store certificate file failed", zap.Error(err),
			zap.String("enrollment_id", enrollmentID.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Could not save certificate")
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(header.Filename), ext)
	}

	url := h.UploadURL + "/" + stored
	cert, err := h.Certificates.Upsert(ctx, enrollmentID, title, url, &stored)
	if err != nil {
		h.Log.Error("upsert certificate failed", zap.Error(err),
			zap.String("enrollment_id", enrollmentID.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Could not save certificate")
		return
	}

	h.Log.Info("certificate uploaded",
		zap.String("enrollment_id", enrollmentID.Hex()),
		zap.String("file", stored))
	httpjson.Data(w, http.StatusCreated, toCertificateDTO(*cert))
}

// ServeMine handles GET /certificates/mine. Only enrollments that have a
// certificate show up, each with its course title joined in.
func (h *Handler) ServeMine(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		httpjson.Error(w, http.StatusUnauthorized, "Not authorized, token failed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rows, err := enrolled.ListForUser(ctx, h.DB, userID)
	if err != nil {
		h.Log.Error("list certificates failed", zap.Error(err), zap.String("user_id", user.ID))
		httpjson.Error(w, http.StatusInternalServerError, "Could not load certificates")
		return
	}

	out := make([]OwnedCertificateDTO, 0, len(rows))
	for _, row := range rows {
		if row.Certificate == nil {
			continue
		}
		out = append(out, OwnedCertificateDTO{
			CertificateDTO: toCertificateDTO(*row.Certificate),
			CourseTitle:    row.Course.Title,
		})
	}
	httpjson.Data(w, http.StatusOK, out)
}
