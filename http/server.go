// Package http 提供HTTP服务器功能
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Server HTTP服务器
type Server struct {
	server *http.Server
	config ServerConfig
	logger *zap.Logger
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port           int
	Timeout        time.Duration
	AllowedOrigins []string
	CertFile       string
	KeyFile        string
	MaxBodyBytes   int64
}

// DefaultServerConfig 默认服务器配置
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Port:           5001,
		Timeout:        30 * time.Second,
		AllowedOrigins: []string{"*"},
		MaxBodyBytes:   1 << 20,
	}
}

// NewServer 创建HTTP服务器
func NewServer(config ServerConfig, handler *Handler, logger *zap.Logger) *Server {
	if config.MaxBodyBytes <= 0 {
		config.MaxBodyBytes = DefaultServerConfig().MaxBodyBytes
	}

	mux := http.NewServeMux()
	handler.Register(mux)

	// 创建中间件链
	chain := Chain(
		RecoveryMiddleware(logger),                 // 1. 恢复中间件（最先执行，捕获panic）
		LoggerMiddleware(logger),                   // 2. 日志中间件
		CORSMiddleware(config.AllowedOrigins),      // 3. CORS中间件
		RequestSizeMiddleware(config.MaxBodyBytes), // 4. 请求大小限制
	)

	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf(":%d", config.Port),
			Handler:      chain(mux),
			ReadTimeout:  config.Timeout,
			WriteTimeout: config.Timeout,
			IdleTimeout:  120 * time.Second,
		},
		config: config,
		logger: logger,
	}
}

// TLSEnabled 是否配置了证书
func (s *Server) TLSEnabled() bool {
	return s.config.CertFile != "" && s.config.KeyFile != ""
}

// Start 启动服务器
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server",
		zap.String("addr", s.server.Addr),
		zap.Bool("tls", s.TLSEnabled()))

	var err error
	if s.TLSEnabled() {
		err = s.server.ListenAndServeTLS(s.config.CertFile, s.config.KeyFile)
	} else {
		err = s.server.ListenAndServe()
	}
	if err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Stop 停止服务器
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.logger.Info("shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	return nil
}

// Addr 返回服务器地址
func (s *Server) Addr() string {
	return s.server.Addr
}
