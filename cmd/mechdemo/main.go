package main

import (
	"encoding/json"
	"fmt"
	"time"

	mechanism "github.com/iwtcode/mechanismAdapter"
	"github.com/iwtcode/mechanismAdapter/actuator"
	"github.com/iwtcode/mechanismAdapter/units"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const settleTimeout = 5 * time.Second

type rig struct {
	client *mechanism.Client
	sims   []*actuator.Simulator
	tick   time.Duration
}

// runStep выполняет шаг сценария и прогоняет модель приводов, пока условие не выполнится.
func runStep(name string, r *rig, fn func() error, done func() bool) {
	logrus.Infof("--- Запуск шага: %s ---", name)

	if err := fn(); err != nil {
		logrus.Fatalf("Ошибка выполнения на шаге %s: %v", name, err)
	}

	deadline := time.Now().Add(settleTimeout)
	for !done() {
		if time.Now().After(deadline) {
			logrus.Warnf("Предупреждение: шаг %s не завершился за %s", name, settleTimeout)
			break
		}
		for _, s := range r.sims {
			s.Step(r.tick)
		}
		r.client.Periodic()
	}

	printAsJSON(name, r.client.Periodic())
	logrus.Infof("--- Шаг %s выполнен ---", name)
	fmt.Println("==================================================")
}

func main() {
	// 1) Загрузка конфигурации
	err := godotenv.Load("./.env")
	if err != nil {
		logrus.Warnf("Warning: Could not load .env file. Using default values or environment variables: %v", err)
	}

	cfg := mechanism.Load()
	logrus.Infof("Конфигурация загружена: constants=%q, tick=%dms, log=%s", cfg.ConstantsPath, cfg.TickMs, cfg.LogLevel)

	// 2) Программные приводы вместо оборудования
	hoist := actuator.NewSimulator(actuator.DefaultSimulatorConfig(3))
	lever := actuator.NewSimulator(actuator.DefaultSimulatorConfig(2))
	clamp := actuator.NewSimulator(actuator.DefaultSimulatorConfig(3))

	client, err := mechanism.New(cfg, mechanism.Drivers{Hoist: hoist, Lever: lever, Clamp: clamp})
	if err != nil {
		logrus.Fatalf("Не удалось создать клиент: %v", err)
	}
	r := &rig{
		client: client,
		sims:   []*actuator.Simulator{hoist, lever, clamp},
		tick:   time.Duration(cfg.TickMs) * time.Millisecond,
	}
	atTarget := func(t func() units.TriState) func() bool {
		return func() bool { v, ok := t().Bool(); return ok && v }
	}

	// 3) Подъем на первый уровень
	runStep("HoistToL1", r,
		func() error { return client.Hoist().SetTargetByName(units.L1) },
		atTarget(client.Hoist().IsAtTarget))

	// 4) Закрытие рычага
	runStep("CloseLever", r,
		func() error { return client.Lever().SetTargetByName(units.Closed) },
		atTarget(client.Lever().IsAtTarget))

	// 5) Зажим в разомкнутом режиме: цель сбрасывается, состояние определяется только по позиции
	runStep("ClampOpenLoop", r,
		func() error { return client.Clamp().SetOpenLoop(0.3) },
		func() bool {
			state, ok := client.Clamp().State()
			return ok && state == units.Closed
		})

	// 6) Остановка всех механизмов
	runStep("StopAll", r, client.StopAll, func() bool { return true })

	logrus.Info("Сценарий завершен.")
}

// printAsJSON форматирует данные в JSON и выводит в лог
func printAsJSON(name string, data interface{}) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		logrus.Errorf("Ошибка маршалинга JSON для %s: %v", name, err)
		return
	}
	fmt.Printf("--- %s ---\n%s\n", name, string(jsonData))
}
