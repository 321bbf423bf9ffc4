package http

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/api/middleware"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/bdl"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/enums/bdlenum"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/infrastructure/monitoring"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/logging"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/pipeline"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/rpd"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/schema"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/shared/fsutil"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/simoutput"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Multipart field holding simulation outputs; every other file field names
// a model type.
const outputsField = "outputs"

// Handlers serves the conversion API.
type Handlers struct {
	pipeline     *pipeline.Pipeline
	schema       *schema.Set
	metrics      *monitoring.Metrics
	logger       *logging.Logger
	maxBodyBytes int64
	version      string
}

// NewHandlers creates a new handler set
func NewHandlers(
	p *pipeline.Pipeline,
	set *schema.Set,
	metrics *monitoring.Metrics,
	logger *logging.Logger,
	maxBodyBytes int64,
	version string,
) *Handlers {
	return &Handlers{
		pipeline:     p,
		schema:       set,
		metrics:      metrics,
		logger:       logger,
		maxBodyBytes: maxBodyBytes,
		version:      version,
	}
}

// Health handles health check
func (h *Handlers) Health(c *gin.Context) {
	snap := h.metrics.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"version": h.version,
		"schema": gin.H{
			"origin":  h.schema.Origin,
			"version": h.schema.Version,
		},
		"models": gin.H{
			"converted": snap.ModelsConverted,
			"failed":    snap.ModelsFailed,
		},
	})
}

// Convert turns one or more BDL models into an RPD document. The body is
// either raw BDL text (model type from ?type=, default PROPOSED) or a
// multipart form whose file fields are named by model type, with an
// optional "outputs" file of simulation results.
func (h *Handlers) Convert(c *gin.Context) {
	inputs, outputs, err := h.readInputs(c)
	if err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}

	p := h.pipeline
	if outputs != nil {
		p = p.WithOutputs(outputs)
	}
	res, err := p.ConvertProject(c.Request.Context(), inputs)
	if res != nil {
		c.Header(middleware.RunIDHeader, res.RunID.String())
	}
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, pipeline.ErrNoModels) {
			status = http.StatusBadRequest
		}
		h.logger.Warn("conversion failed",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Error(err),
		)
		c.JSON(status, gin.H{
			"success": false,
			"error":   err.Error(),
			"models":  modelSummaries(res),
		})
		return
	}

	body, err := rpd.Marshal(res.Document, indentFor(c))
	if err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}
	h.metrics.IncDocumentsWritten()
	c.Header("X-Warnings", fmt.Sprint(len(res.Warnings())))
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// Inspect reports the version and per-command instance counts of a BDL body.
func (h *Handlers) Inspect(c *gin.Context) {
	data, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes))
	if err != nil {
		h.fail(c, http.StatusRequestEntityTooLarge, err)
		return
	}
	text, err := fsutil.DecodeText(data)
	if err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}
	file, err := bdl.Parse(text)
	if err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"version":     file.Version,
		"counts":      file.Counts(),
		"fingerprint": pipeline.Fingerprint(text),
	})
}

// Enumeration returns one enumeration from the schema registry, or from the
// BDL token registry with ?source=bdl.
func (h *Handlers) Enumeration(c *gin.Context) {
	name := c.Param("name")
	var members []string
	if c.Query("source") == "bdl" {
		if e, ok := bdlenum.Lookup(name); ok {
			members = e.Members()
		}
	} else if e, ok := h.schema.Enums().Lookup(name); ok {
		members = e.Members()
	}
	if members == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   fmt.Sprintf("enumeration %q not found", name),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"name":    name,
		"members": members,
	})
}

// Enumerations lists the enumeration names.
func (h *Handlers) Enumerations(c *gin.Context) {
	names := h.schema.Enums().Names()
	if c.Query("source") == "bdl" {
		names = bdlenum.Names()
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"names":   names,
	})
}

func (h *Handlers) fail(c *gin.Context, status int, err error) {
	_ = c.Error(err)
	c.JSON(status, gin.H{
		"success": false,
		"error":   err.Error(),
	})
}

func (h *Handlers) readInputs(c *gin.Context) ([]pipeline.Input, simoutput.Source, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes)

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		form, err := c.MultipartForm()
		if err != nil {
			return nil, nil, fmt.Errorf("invalid multipart body: %w", err)
		}
		return readForm(form)
	}

	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, nil, err
	}
	text, err := fsutil.DecodeText(data)
	if err != nil {
		return nil, nil, err
	}
	in := pipeline.Input{
		Type: strings.ToUpper(c.DefaultQuery("type", pipeline.TypeProposed)),
		Name: c.Query("name"),
		Text: text,
	}
	return []pipeline.Input{in}, nil, nil
}

func readForm(form *multipart.Form) ([]pipeline.Input, simoutput.Source, error) {
	var (
		inputs  []pipeline.Input
		outputs simoutput.Source
	)
	for _, field := range sortedKeys(form.File) {
		for _, fh := range form.File[field] {
			data, err := readPart(fh)
			if err != nil {
				return nil, nil, err
			}
			if field == outputsField {
				format, err := fsutil.FormatOf(fh.Filename)
				if err != nil {
					format = fsutil.FormatJSON
				}
				if outputs, err = simoutput.Decode(format, data); err != nil {
					return nil, nil, err
				}
				continue
			}
			text, err := fsutil.DecodeText(data)
			if err != nil {
				return nil, nil, fmt.Errorf("%s: %w", fh.Filename, err)
			}
			inputs = append(inputs, pipeline.Input{
				Type: strings.ToUpper(field),
				Name: fh.Filename,
				Text: text,
			})
		}
	}
	return inputs, outputs, nil
}

func readPart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func indentFor(c *gin.Context) string {
	if c.Query("compact") == "true" {
		return ""
	}
	return rpd.DefaultIndent
}

func modelSummaries(res *pipeline.Result) []gin.H {
	if res == nil {
		return nil
	}
	out := make([]gin.H, 0, len(res.Models))
	for _, m := range res.Models {
		entry := gin.H{"name": m.Label, "type": m.Type}
		if m.Err != nil {
			entry["error"] = m.Err.Error()
		}
		out = append(out, entry)
	}
	return out
}
