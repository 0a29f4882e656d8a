// Package metrics регистрирует метрики ядра мира в дефолтном регистре
// Prometheus. Хост решает сам, поднимать ли HTTP-эндпоинт /metrics.
//
// Метрики:
// * blockforge_chunks_created_total — counter
// * blockforge_chunks_meshed_total — counter
// * blockforge_chunks_unloaded_total — counter
// * blockforge_chunks_loaded — gauge
// * blockforge_mobs_alive — gauge
// * blockforge_drops_alive — gauge
// * blockforge_blocks_modified_total{op} — counter (place/remove)
// * blockforge_tick_duration_seconds — histogram
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics объединяет счётчики ядра. Создаётся один раз на процесс:
// повторная регистрация в дефолтном регистре вызовет панику.
type Metrics struct {
	ChunksCreated  prometheus.Counter
	ChunksMeshed   prometheus.Counter
	ChunksUnloaded prometheus.Counter
	ChunksLoaded   prometheus.Gauge
	MobsAlive      prometheus.Gauge
	DropsAlive     prometheus.Gauge
	BlocksModified *prometheus.CounterVec
	TickDuration   prometheus.Histogram
}

// New создаёт метрики и регистрирует их в дефолтном регистре
func New() *Metrics {
	m := &Metrics{
		ChunksCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "blockforge",
			Name:      "chunks_created_total",
			Help:      "Общее число сгенерированных чанков.",
		}),
		ChunksMeshed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "blockforge",
			Name:      "chunks_meshed_total",
			Help:      "Общее число перестроек мешей чанков.",
		}),
		ChunksUnloaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "blockforge",
			Name:      "chunks_unloaded_total",
			Help:      "Общее число выгруженных чанков.",
		}),
		ChunksLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "blockforge",
			Name:      "chunks_loaded",
			Help:      "Текущее количество загруженных чанков.",
		}),
		MobsAlive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "blockforge",
			Name:      "mobs_alive",
			Help:      "Текущее количество живых мобов.",
		}),
		DropsAlive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "blockforge",
			Name:      "drops_alive",
			Help:      "Текущее количество предметов на земле.",
		}),
		BlocksModified: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "blockforge",
			Name:      "blocks_modified_total",
			Help:      "Общее число изменений блоков по типу операции.",
		}, []string{"op"}),
		TickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "blockforge",
			Name:      "tick_duration_seconds",
			Help:      "Длительность одного тика игровой сессии.",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		}),
	}

	prometheus.MustRegister(
		m.ChunksCreated, m.ChunksMeshed, m.ChunksUnloaded, m.ChunksLoaded,
		m.MobsAlive, m.DropsAlive, m.BlocksModified, m.TickDuration,
	)
	return m
}

// Методы ниже безопасны при нулевом приёмнике: компоненты, созданные без
// метрик (тесты, инструменты), просто ничего не считают.

// ChunkCreated учитывает генерацию чанка
func (m *Metrics) ChunkCreated() {
	if m == nil {
		return
	}
	m.ChunksCreated.Inc()
	m.ChunksLoaded.Inc()
}

// ChunkMeshed учитывает перестройку меша
func (m *Metrics) ChunkMeshed() {
	if m == nil {
		return
	}
	m.ChunksMeshed.Inc()
}

// ChunkUnloaded учитывает выгрузку чанка
func (m *Metrics) ChunkUnloaded() {
	if m == nil {
		return
	}
	m.ChunksUnloaded.Inc()
	m.ChunksLoaded.Dec()
}

// BlockModified учитывает изменение блока (op: place или remove)
func (m *Metrics) BlockModified(op string) {
	if m == nil {
		return
	}
	m.BlocksModified.WithLabelValues(op).Inc()
}

// SetMobsAlive обновляет количество живых мобов
func (m *Metrics) SetMobsAlive(n int) {
	if m == nil {
		return
	}
	m.MobsAlive.Set(float64(n))
}

// SetDropsAlive обновляет количество предметов на земле
func (m *Metrics) SetDropsAlive(n int) {
	if m == nil {
		return
	}
	m.DropsAlive.Set(float64(n))
}

// ObserveTick фиксирует длительность тика в секундах
func (m *Metrics) ObserveTick(seconds float64) {
	if m == nil {
		return
	}
	m.TickDuration.Observe(seconds)
}
