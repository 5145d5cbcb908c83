package task

import (
	"context"

	"go.uber.org/zap"

	"marketplace_api/internal/repository"
)

// ==================== TaskManager 后台任务管理器 ====================

// TaskManager 统一管理 serve 进程内的定时任务
type TaskManager struct {
	reconcileTask *StoreReconcileTask
	reconcileSpec string
	logger        *zap.Logger
}

// TaskManagerDeps 任务管理器依赖
type TaskManagerDeps struct {
	StoreRepo repository.StoreRepository
	Logger    *zap.Logger
}

// TaskManagerConfig 任务管理器配置
type TaskManagerConfig struct {
	ReconcileEnabled bool
	ReconcileSpec    string
}

// DefaultConfig 默认配置
func DefaultConfig() *TaskManagerConfig {
	return &TaskManagerConfig{
		ReconcileEnabled: true,
		ReconcileSpec:    DefaultReconcileSpec,
	}
}

// NewTaskManager 创建任务管理器
func NewTaskManager(deps *TaskManagerDeps, cfg *TaskManagerConfig) *TaskManager {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	tm := &TaskManager{logger: logger.Named("tasks")}
	if cfg.ReconcileEnabled && deps.StoreRepo != nil {
		tm.reconcileTask = NewStoreReconcileTask(deps.StoreRepo, logger)
		tm.reconcileSpec = cfg.ReconcileSpec
	}
	return tm
}

// ==================== 生命周期管理 ====================

// Start 启动所有任务
func (tm *TaskManager) Start() error {
	if tm.reconcileTask != nil {
		if err := tm.reconcileTask.Start(tm.reconcileSpec); err != nil {
			return err
		}
	}
	tm.logger.Info("后台任务已启动", zap.Any("status", tm.Status()))
	return nil
}

// Stop 停止所有任务
func (tm *TaskManager) Stop() {
	if tm.reconcileTask != nil {
		tm.reconcileTask.Stop()
	}
	tm.logger.Info("后台任务已停止")
}

// ==================== 手动触发接口 ====================

// TriggerReconcile 立即执行一次店铺巡检
func (tm *TaskManager) TriggerReconcile(ctx context.Context) (ReconcileResult, error) {
	if tm.reconcileTask == nil {
		return ReconcileResult{}, ErrTaskDisabled
	}
	return tm.reconcileTask.Execute(ctx)
}

// Status 获取任务状态
func (tm *TaskManager) Status() map[string]bool {
	return map[string]bool{
		"reconcile": tm.reconcileTask != nil,
	}
}

// ==================== 错误定义 ====================

type TaskError string

func (e TaskError) Error() string { return string(e) }

const (
	ErrTaskDisabled TaskError = "task is disabled"
)
