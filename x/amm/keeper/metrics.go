package keeper

import (
	"math/big"
	"strconv"
	"sync"

	"cosmossdk.io/math"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/paw-chain/pawswap/x/amm/types"
)

// AMMMetrics holds all Prometheus metrics for the AMM module
type AMMMetrics struct {
	// Swap metrics
	SwapsTotal        *prometheus.CounterVec
	SwapVolume        *prometheus.CounterVec
	SwapLatency       prometheus.Histogram
	SwapFeesCollected *prometheus.CounterVec

	// Liquidity metrics
	LiquidityAdded   *prometheus.CounterVec
	LiquidityRemoved *prometheus.CounterVec
	PoolReserves     *prometheus.GaugeVec
	LPShareSupply    *prometheus.GaugeVec

	// Pool metrics
	PoolsTotal prometheus.Gauge

	// Fee administration
	FeeUpdates     *prometheus.CounterVec
	FeeWithdrawals *prometheus.CounterVec
}

var (
	ammMetricsOnce sync.Once
	ammMetrics     *AMMMetrics
)

// NewAMMMetrics creates and registers AMM metrics (singleton pattern)
func NewAMMMetrics() *AMMMetrics {
	ammMetricsOnce.Do(func() {
		ammMetrics = &AMMMetrics{
			SwapsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "amm",
					Name:      "swaps_total",
					Help:      "Total number of swaps attempted",
				},
				[]string{"pool_id", "token_in", "token_out", "status"},
			),
			SwapVolume: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "amm",
					Name:      "swap_volume_total",
					Help:      "Total swap input volume in base units",
				},
				[]string{"pool_id", "denom"},
			),
			SwapLatency: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Namespace: "pawswap",
					Subsystem: "amm",
					Name:      "swap_latency_seconds",
					Help:      "Swap execution latency in seconds",
					Buckets:   prometheus.DefBuckets,
				},
			),
			SwapFeesCollected: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "amm",
					Name:      "swap_fees_collected_total",
					Help:      "Total swap fees moved into fee buckets",
				},
				[]string{"pool_id", "denom"},
			),
			LiquidityAdded: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "amm",
					Name:      "liquidity_added_total",
					Help:      "Total liquidity added to pools",
				},
				[]string{"pool_id", "denom"},
			),
			LiquidityRemoved: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "amm",
					Name:      "liquidity_removed_total",
					Help:      "Total liquidity removed from pools",
				},
				[]string{"pool_id", "denom"},
			),
			PoolReserves: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "pawswap",
					Subsystem: "amm",
					Name:      "pool_reserves",
					Help:      "Current pool reserves",
				},
				[]string{"pool_id", "denom"},
			),
			LPShareSupply: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "pawswap",
					Subsystem: "amm",
					Name:      "lp_share_supply",
					Help:      "Outstanding liquidity shares per pool",
				},
				[]string{"pool_id"},
			),
			PoolsTotal: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: "pawswap",
					Subsystem: "amm",
					Name:      "pools_total",
					Help:      "Number of pools created",
				},
			),
			FeeUpdates: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "amm",
					Name:      "fee_updates_total",
					Help:      "Fee configuration changes per pool",
				},
				[]string{"pool_id"},
			),
			FeeWithdrawals: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "amm",
					Name:      "fee_withdrawals_total",
					Help:      "Fees withdrawn by the admin capability holder",
				},
				[]string{"pool_id", "denom"},
			),
		}
	})
	return ammMetrics
}

// recordPoolState refreshes the reserve and supply gauges of a pool.
func (k Keeper) recordPoolState(pool *types.Pool) {
	if k.metrics == nil {
		return
	}
	poolID := strconv.FormatUint(pool.Id, 10)
	k.metrics.PoolReserves.WithLabelValues(poolID, pool.TokenA).Set(intToFloat(pool.ReserveA))
	k.metrics.PoolReserves.WithLabelValues(poolID, pool.TokenB).Set(intToFloat(pool.ReserveB))
	k.metrics.LPShareSupply.WithLabelValues(poolID).Set(intToFloat(pool.TotalShares))
}

// intToFloat converts without the int64 bound that math.Int.Int64 enforces.
func intToFloat(i math.Int) float64 {
	if i.IsNil() {
		return 0
	}
	f, _ := new(big.Float).SetInt(i.BigInt()).Float64()
	return f
}
