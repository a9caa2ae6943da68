package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(botCommandsTotal) }

var botCommandsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "quran_bot_commands_total",
		Help: "Total handled bot commands and callback selections.",
	},
	[]string{"command"},
)

func IncCommand(command string) {
	botCommandsTotal.WithLabelValues(norm(command)).Inc()
}
