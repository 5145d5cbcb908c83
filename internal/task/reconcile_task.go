package task

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"marketplace_api/internal/repository"
)

// DefaultReconcileSpec 每 10 分钟巡检一次
const DefaultReconcileSpec = "0 */10 * * * *"

var reconciledStores = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "store_reconcile_total",
		Help: "Stores processed by the owner back-reference reconciliation",
	},
	[]string{"action"},
)

func init() {
	prometheus.MustRegister(reconciledStores)
}

// ReconcileResult 一次巡检的处理结果
type ReconcileResult struct {
	Relinked int
	Deleted  int
	Skipped  int
	Failed   int
}

// ==================== StoreReconcileTask 店铺归属巡检 ====================

// StoreReconcileTask 修复店铺与 super_admin 之间断开的反向引用
//   - owner 存在且没有店铺: 重新指回，角色 super_admin
//   - owner 已不存在，或已挂在别的店铺上: 店铺无人可达，软删除
type StoreReconcileTask struct {
	storeRepo repository.StoreRepository
	logger    *zap.Logger
	cron      *cron.Cron
	timeout   time.Duration

	mu      sync.Mutex // 防止手动触发与定时任务重叠
	running bool
}

// NewStoreReconcileTask 创建巡检任务
func NewStoreReconcileTask(storeRepo repository.StoreRepository, logger *zap.Logger) *StoreReconcileTask {
	return &StoreReconcileTask{
		storeRepo: storeRepo,
		logger:    logger.Named("reconcile"),
		cron:      cron.New(cron.WithSeconds()),
		timeout:   2 * time.Minute,
	}
}

// Start 注册定时任务并启动
func (t *StoreReconcileTask) Start(spec string) error {
	if spec == "" {
		spec = DefaultReconcileSpec
	}
	_, err := t.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
		defer cancel()
		if _, err := t.Execute(ctx); err != nil {
			t.logger.Error("店铺巡检失败", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}
	t.cron.Start()
	t.logger.Info("店铺巡检任务已启动", zap.String("spec", spec))
	return nil
}

// Stop 停止调度并等待正在执行的任务结束
func (t *StoreReconcileTask) Stop() {
	<-t.cron.Stop().Done()
}

// Execute 执行一次完整巡检
func (t *StoreReconcileTask) Execute(ctx context.Context) (ReconcileResult, error) {
	var res ReconcileResult

	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		t.logger.Warn("上一次巡检尚未结束，跳过")
		return res, nil
	}
	t.running = true
	t.mu.Unlock()
	defer func() {
		t.mu.Lock()
		t.running = false
		t.mu.Unlock()
	}()

	orphans, err := t.storeRepo.FindOrphans(ctx)
	if err != nil {
		return res, err
	}
	if len(orphans) == 0 {
		return res, nil
	}

	for _, o := range orphans {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		t.reconcileOne(ctx, o, &res)
	}

	t.logger.Info("店铺巡检完成",
		zap.Int("orphans", len(orphans)),
		zap.Int("relinked", res.Relinked),
		zap.Int("deleted", res.Deleted),
		zap.Int("skipped", res.Skipped),
		zap.Int("failed", res.Failed),
	)
	return res, nil
}

func (t *StoreReconcileTask) reconcileOne(ctx context.Context, o repository.OrphanStore, res *ReconcileResult) {
	log := t.logger.With(zap.Int64("store_id", o.StoreID), zap.Int64("owner_id", o.OwnerID))

	if o.OwnerExists && o.OwnerStoreID == nil {
		err := t.storeRepo.RelinkOwner(ctx, o.StoreID, o.OwnerID)
		switch {
		case err == nil:
			res.Relinked++
			reconciledStores.WithLabelValues("relinked").Inc()
			log.Info("已重新关联店铺 owner")
		case errors.Is(err, repository.ErrConditionNotMet):
			// 期间 owner 已获得店铺，下一轮再判断
			res.Skipped++
			reconciledStores.WithLabelValues("skipped").Inc()
		default:
			res.Failed++
			reconciledStores.WithLabelValues("failed").Inc()
			log.Error("重新关联店铺失败", zap.Error(err))
		}
		return
	}

	if err := t.storeRepo.Delete(ctx, o.StoreID); err != nil {
		res.Failed++
		reconciledStores.WithLabelValues("failed").Inc()
		log.Error("删除孤立店铺失败", zap.Error(err))
		return
	}
	res.Deleted++
	reconciledStores.WithLabelValues("deleted").Inc()
	log.Info("已删除孤立店铺", zap.Bool("owner_exists", o.OwnerExists))
}
