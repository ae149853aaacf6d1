package app

import (
	"context"
	"errors"
	"os/signal"
	"time"

	"github.com/brandsite-api/internal/config"
	"github.com/brandsite-api/internal/logger"
	"github.com/brandsite-api/internal/provider"
	"github.com/brandsite-api/internal/router"
	"github.com/brandsite-api/internal/worker"

	"go.uber.org/zap"
)

// Service 可独立启停的进程内服务（HTTP / worker）
type Service interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Runner 按运行模式组合的服务集合
type Runner struct {
	mode     string
	services []Service
}

// NewRunner 创建服务运行器
func NewRunner(mode string, services ...Service) *Runner {
	return &Runner{mode: mode, services: services}
}

// Mode 运行模式
func (r *Runner) Mode() string {
	if r == nil {
		return ""
	}
	return r.mode
}

// BuildRunner 构建服务运行器，返回的容器需在运行结束后关闭
func BuildRunner(cfg *config.Config, mode string) (*Runner, *provider.Container, error) {
	if cfg == nil {
		return nil, nil, errors.New("config is nil")
	}
	if !IsValidMode(mode) {
		return nil, nil, errors.New("unknown run mode: " + mode)
	}

	container := provider.NewContainer(cfg)

	var services []Service

	// HTTP 接口
	if mode == ModeAll || mode == ModeAPI {
		engine := router.SetupRouter(cfg, container)
		services = append(services, NewHTTPService(listenAddr(cfg), engine))
	}

	// 邮件任务 worker，all 模式下未启用队列时仅提示
	if mode == ModeAll || mode == ModeWorker {
		if !cfg.Queue.Enabled && mode == ModeAll {
			logger.Warnw("app_worker_skip_queue_disabled")
		} else {
			workerService, err := worker.NewService(&cfg.Queue, worker.NewConsumer(container))
			if err != nil {
				container.Close()
				return nil, nil, err
			}
			services = append(services, workerService)
		}
	}

	if len(services) == 0 {
		container.Close()
		return nil, nil, errors.New("no services initialized (check mode and config)")
	}

	return NewRunner(mode, services...), container, nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	runner, container, err := BuildRunner(opts.Config, opts.Mode)
	if err != nil {
		return err
	}
	defer container.Close()

	ctx := context.Background()
	if len(opts.Signals) > 0 {
		var cancel context.CancelFunc
		ctx, cancel = signal.NotifyContext(ctx, opts.Signals...)
		defer cancel()
	}

	opts.Logger.Infow("app_start", "addr", listenAddr(opts.Config), "mode", runner.Mode())
	return runner.Run(ctx, opts.ShutdownTimeout, opts.Logger)
}

// Run 并发启动全部服务；任一服务退出或 ctx 结束时统一停止。
// 收到取消信号视为正常退出。
func (r *Runner) Run(ctx context.Context, stopTimeout time.Duration, log *zap.SugaredLogger) error {
	if r == nil || len(r.services) == 0 {
		return errors.New("no services to run")
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	log = log.With("mode", r.mode)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	exited := make(chan serviceExit, len(r.services))
	for _, svc := range r.services {
		go r.start(ctx, svc, log, exited)
	}

	var runErr error
	select {
	case <-ctx.Done():
		runErr = ctx.Err()
	case exit := <-exited:
		runErr = exit.err
		if runErr != nil {
			log.Errorw("service_failed", "service", exit.name, "error", runErr)
		}
	}
	cancel()
	if errors.Is(runErr, context.Canceled) {
		runErr = nil
	}

	if stopErr := r.stopAll(stopTimeout, log); stopErr != nil && runErr == nil {
		runErr = stopErr
	}
	return runErr
}

type serviceExit struct {
	name string
	err  error
}

func (r *Runner) start(ctx context.Context, svc Service, log *zap.SugaredLogger, exited chan<- serviceExit) {
	if svc == nil {
		exited <- serviceExit{name: "unknown", err: errors.New("service is nil")}
		return
	}
	name := svc.Name()
	log.Infow("service_start", "service", name)
	err := svc.Start(ctx)
	log.Infow("service_exit", "service", name)
	exited <- serviceExit{name: name, err: err}
}

func (r *Runner) stopAll(timeout time.Duration, log *zap.SugaredLogger) error {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	stopCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var errs []error
	for _, svc := range r.services {
		if svc == nil {
			continue
		}
		if err := svc.Stop(stopCtx); err != nil {
			log.Errorw("service_stop_failed", "service", svc.Name(), "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func listenAddr(cfg *config.Config) string {
	return cfg.Server.Host + ":" + cfg.Server.Port
}
