package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/civium-platform/zk-compliance/metrics"
	"github.com/civium-platform/zk-compliance/prover"
	"github.com/civium-platform/zk-compliance/toolchain"
	"github.com/civium-platform/zk-compliance/types"
	"github.com/civium-platform/zk-compliance/verifier"
)

var fAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "run the proving and verification HTTP API",
	RunE:  runServe,
}

type server struct {
	prover   *prover.Prover
	verifier *verifier.Verifier
	metrics  *metrics.Metrics
	log      zerolog.Logger
}

func runServe(cmd *cobra.Command, args []string) error {
	log := newLogger()
	cfg := toolchainConfig()
	s := &server{
		prover:   prover.New(cfg, log),
		verifier: verifier.New(cfg, log),
		metrics:  metrics.New(),
		log:      log,
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", healthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.POST("/prove/threshold", s.proveThreshold)
	router.POST("/prove/range", s.proveRange)
	router.POST("/prove/tier", s.proveTier)
	router.POST("/verify", s.verify)

	log.Info().Str("addr", fAddr).Msg("listening")
	return router.Run(fAddr)
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *server) proveThreshold(c *gin.Context) {
	var req types.ThresholdProofRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.prove(c, prover.CircuitThreshold, func(ctx context.Context) (types.ProofWithMetadata, error) {
		return s.prover.ProveThreshold(ctx, req)
	})
}

func (s *server) proveRange(c *gin.Context) {
	var req types.RangeProofRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.prove(c, prover.CircuitRange, func(ctx context.Context) (types.ProofWithMetadata, error) {
		return s.prover.ProveRange(ctx, req)
	})
}

func (s *server) proveTier(c *gin.Context) {
	var req types.TierProofRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.prove(c, prover.CircuitTier, func(ctx context.Context) (types.ProofWithMetadata, error) {
		return s.prover.ProveTier(ctx, req)
	})
}

func (s *server) prove(c *gin.Context, circuit string, fn func(context.Context) (types.ProofWithMetadata, error)) {
	reqID := uuid.NewString()
	log := s.log.With().Str("request_id", reqID).Str("circuit", circuit).Logger()

	start := time.Now()
	proof, err := fn(c.Request.Context())
	if err != nil {
		status, reason := proveErrorStatus(err)
		s.metrics.ProofFailures.WithLabelValues(circuit, reason).Inc()
		log.Error().Err(err).Str("reason", reason).Msg("proving failed")
		c.JSON(status, gin.H{"error": err.Error(), "request_id": reqID})
		return
	}

	s.metrics.ProofsGenerated.WithLabelValues(circuit).Inc()
	s.metrics.ProvingSeconds.WithLabelValues(circuit).Observe(time.Since(start).Seconds())
	log.Info().Str("commitment", proof.Commitment()).Msg("proof generated")
	c.JSON(http.StatusOK, proof)
}

func (s *server) verify(c *gin.Context) {
	var proof types.ProofWithMetadata
	if err := c.ShouldBindJSON(&proof); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start := time.Now()
	result, err := s.verifier.VerifyOffChain(c.Request.Context(), proof)
	if err != nil {
		s.metrics.Verifications.WithLabelValues(proof.Metadata.CircuitName, "error").Inc()
		status := http.StatusInternalServerError
		if errors.Is(err, toolchain.ErrVerifyTimeout) {
			status = http.StatusGatewayTimeout
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	outcome := "invalid"
	if result.Valid {
		outcome = "valid"
	}
	s.metrics.Verifications.WithLabelValues(proof.Metadata.CircuitName, outcome).Inc()
	s.metrics.VerifySeconds.Observe(time.Since(start).Seconds())
	c.JSON(http.StatusOK, result)
}

func proveErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, types.ErrClaimInvalid):
		return http.StatusBadRequest, "claim_invalid"
	case errors.Is(err, toolchain.ErrSetup):
		return http.StatusServiceUnavailable, "setup_missing"
	case errors.Is(err, toolchain.ErrProvingTimeout):
		return http.StatusGatewayTimeout, "timeout"
	default:
		return http.StatusInternalServerError, "proving_failed"
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&fAddr, "addr", ":8010", "listen address")
}
