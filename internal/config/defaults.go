package config

import "github.com/m04kA/SMC-AppointmentService/internal/domain"

// Default returns the configuration of the reference barber shop deployment
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 30,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			Password:        "postgres",
			DBName:          "smc_appointments",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			File:  "logs/app.log",
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "appointmentservice",
		},
		Scheduling: SchedulingConfig{
			TimeZone:               domain.DefaultTimeZone,
			SlotGranularityMinutes: int(domain.DefaultSlotGranularity.Minutes()),
			MaxCreateAttempts:      domain.DefaultMaxCreateAttempts,
			Shifts: []ShiftConfig{
				{Start: "09:00", End: "13:00"},
				{Start: "16:00", End: "20:00"},
			},
		},
		Catalog: CatalogConfig{
			Services: []ServiceConfig{
				{ID: "haircut", Name: "Corte Pelo", DurationMinutes: 30, Price: 18},
				{ID: "haircut_beard", Name: "Corte+Barba", DurationMinutes: 45, Price: 25},
				{ID: "full_package", Name: "Corte+Barba+Ceja", DurationMinutes: 55, Price: 28},
				{ID: "beard_only", Name: "Solo Barba", DurationMinutes: 20, Price: 12},
				{ID: "brow_only", Name: "Solo Ceja", DurationMinutes: 10, Price: 8},
				{ID: "thread_brow", Name: "Depilación Cejas hilo", DurationMinutes: 10, Price: 10},
				{ID: "nostril", Name: "Depilación Narina", DurationMinutes: 5, Price: 8},
				{ID: "ear", Name: "Depilación Oreja", DurationMinutes: 5, Price: 8},
				{ID: "full_facial", Name: "Full Facial", DurationMinutes: 20, Price: 25},
				{ID: "dye", Name: "Tinte", DurationMinutes: 35, Price: 12},
				{ID: "straightening", Name: "Alisado", DurationMinutes: 35, Price: 12},
			},
			Employees: []EmployeeConfig{
				{ID: "david", Name: "David"},
				{ID: "marta", Name: "Marta"},
			},
		},
		GoogleCalendar: GoogleCalendarConfig{
			AttendeeDomain: domain.DefaultCalendarAttendeeDomain,
			Timeout:        10,
		},
		Events: EventsConfig{
			Topic:        "booking-events",
			WriteTimeout: 5,
		},
		RateLimit: RateLimitConfig{
			Enabled:       true,
			Requests:      30,
			WindowSeconds: 60,
			Burst:         10,
		},
	}
}
