// Package metrics бизнес-метрики сервиса в формате Prometheus.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Исходы входа в систему
const (
	LoginSuccess = "success"
	LoginFailure = "failure"
)

var (
	registrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "psytest_registrations_total",
		Help: "Total number of registered students",
	})

	loginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "psytest_logins_total",
		Help: "Login attempts by result",
	}, []string{"result"}) // result=success|failure

	testsCompletedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "psytest_tests_completed_total",
		Help: "Completed tests by test id",
	}, []string{"test_id"})

	notificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "psytest_notifications_total",
		Help: "Telegram notifications by outcome",
	}, []string{"outcome"}) // outcome=sent|failed
)

// RecordRegistration учитывает успешную регистрацию
func RecordRegistration() {
	registrationsTotal.Inc()
}

// RecordLogin учитывает попытку входа
func RecordLogin(ok bool) {
	if ok {
		loginsTotal.WithLabelValues(LoginSuccess).Inc()
		return
	}
	loginsTotal.WithLabelValues(LoginFailure).Inc()
}

// RecordTestCompleted учитывает завершение теста
func RecordTestCompleted(testID int) {
	testsCompletedTotal.WithLabelValues(strconv.Itoa(testID)).Inc()
}

// RecordNotification учитывает отправку уведомления
func RecordNotification(err error) {
	if err != nil {
		notificationsTotal.WithLabelValues("failed").Inc()
		return
	}
	notificationsTotal.WithLabelValues("sent").Inc()
}
