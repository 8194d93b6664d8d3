package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"net/http"

	"github.com/Depado/ginprom"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/rm-hull/image-convolution/internal"
	"github.com/rm-hull/image-convolution/internal/convolve"
	"github.com/rm-hull/image-convolution/internal/raster"
	healthcheck "github.com/tavsec/gin-healthcheck"
	"github.com/tavsec/gin-healthcheck/checks"
	hc_config "github.com/tavsec/gin-healthcheck/config"
)

// Uploads larger than either limit are rejected with 413. The pixel limit is
// checked against the image header before anything is decoded.
const (
	maxUploadBytes  = 32 << 20
	maxUploadPixels = 16 << 20
)

func ApiServer(port int, workers int, debug bool) {
	internal.ShowVersion()
	internal.RuntimeInfo()
	internal.EnvironmentVars("CONVOLVE_")

	r := gin.New()

	prometheus := ginprom.New(
		ginprom.Engine(r),
		ginprom.Path("/metrics"),
		ginprom.Ignore("/healthz"),
	)

	r.Use(
		gin.Recovery(),
		gin.LoggerWithWriter(gin.DefaultWriter, "/healthz", "/metrics"),
		prometheus.Instrument(),
	)

	if debug {
		log.Println("WARNING: pprof endpoints are enabled and exposed. Do not run with this flag in production.")
		pprof.Register(r)
	}

	err := healthcheck.New(r, hc_config.DefaultConfig(), []checks.Check{})
	if err != nil {
		log.Fatalf("failed to initialize healthcheck: %v", err)
	}

	RegisterRoutes(r, convolve.Engine{Workers: workers})

	addr := fmt.Sprintf(":%d", port)
	log.Printf("Starting HTTP API Server on port %d...", port)
	if err := r.Run(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("HTTP API Server failed to start on port %d: %v", port, err)
	}
}

type kernelInfo struct {
	Name      string      `json:"name"`
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	Normalize bool        `json:"normalize"`
	Factor    float32     `json:"factor"`
	Weights   [][]float32 `json:"weights"`
}

func RegisterRoutes(r gin.IRouter, engine convolve.Engine) {
	v1 := r.Group("/v1")
	v1.GET("/kernels", listKernels)
	v1.GET("/edges", listEdges)
	v1.POST("/convolve/:kernel", convolveHandler(engine))
}

func listKernels(c *gin.Context) {
	kernels := convolve.Kernels()
	resp := make([]kernelInfo, len(kernels))
	for i, k := range kernels {
		w, h := k.Size()
		resp[i] = kernelInfo{
			Name:      k.Name(),
			Width:     w,
			Height:    h,
			Normalize: k.Normalized(),
			Factor:    k.Factor(),
			Weights:   k.Weights(),
		}
	}
	c.JSON(http.StatusOK, resp)
}

func listEdges(c *gin.Context) {
	policies := convolve.Policies()
	names := make([]string, len(policies))
	for i, p := range policies {
		names[i] = p.String()
	}
	c.JSON(http.StatusOK, names)
}

// convolveHandler takes the image as the raw request body and responds with
// the filtered image.
//
//	POST /v1/convolve/Sharpen?edge=Mirror&format=png
func convolveHandler(engine convolve.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		kernel, err := convolve.Lookup(c.Param("kernel"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}

		policy, err := convolve.ParsePolicy(c.DefaultQuery("edge", convolve.Extend.String()))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		format, err := raster.ParseFormat(c.DefaultQuery("format", raster.PNG.String()))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("failed to read body: %v", err)})
			return
		}

		cfg, _, err := image.DecodeConfig(bytes.NewReader(body))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("failed to decode image: %v", err)})
			return
		}
		if int64(cfg.Width)*int64(cfg.Height) > maxUploadPixels {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{
				"error": fmt.Sprintf("image is %dx%d, limit is %d pixels", cfg.Width, cfg.Height, maxUploadPixels),
			})
			return
		}

		img, _, err := raster.Decode(bytes.NewReader(body))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("failed to decode image: %v", err)})
			return
		}

		out, err := engine.Process(c.Request.Context(), convolve.NewImage(img.Img, policy), kernel)
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}

		var buf bytes.Buffer
		if err := raster.New(out).Encode(&buf, format); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="%s-%s%s"`, kernel.Name(), policy, format.Ext()))
		c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
	}
}
