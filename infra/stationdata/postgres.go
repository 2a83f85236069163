package stationdata

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/ecarion/voltroute/core/model"
)

// OpenPostgres opens and verifies a Postgres connection for station loading.
func OpenPostgres(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("station db: open: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("station db: verify connection: %w", err)
	}
	return db, nil
}

// LoadPostgres reads every station row from the charging_stations table.
// Connector types are stored as a semicolon-separated list; null price falls
// back to the power-tier estimate, null connectors to the power-tier set.
func LoadPostgres(ctx context.Context, db *sql.DB) ([]model.ChargingStation, error) {
	const q = `
		SELECT id, name, city, network, latitude, longitude,
		       power_kw, price_per_kwh, connector_types,
		       rating, wait_time_minutes, total_stalls, available_stalls
		FROM charging_stations
		ORDER BY id`

	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("station db: query: %w", err)
	}
	defer rows.Close()

	var stations []model.ChargingStation
	for rows.Next() {
		var (
			st         model.ChargingStation
			city       sql.NullString
			network    sql.NullString
			price      sql.NullFloat64
			connectors sql.NullString
			rating     sql.NullFloat64
			wait       sql.NullFloat64
			total      sql.NullInt64
			available  sql.NullInt64
		)
		if err := rows.Scan(&st.ID, &st.Name, &city, &network,
			&st.Location.Lat, &st.Location.Lon, &st.PowerKW,
			&price, &connectors, &rating, &wait, &total, &available); err != nil {
			return nil, fmt.Errorf("station db: scan: %w", err)
		}
		st.City = city.String
		st.Network = network.String
		if price.Valid {
			st.PricePerKWh = price.Float64
		} else {
			st.PricePerKWh = priceForPower(st.PowerKW)
		}
		if connectors.Valid && connectors.String != "" {
			st.ConnectorTypes = parseConnectorList(connectors.String)
		} else {
			st.ConnectorTypes = connectorsForPower(st.PowerKW)
		}
		st.Rating = rating.Float64
		st.WaitTimeMinutes = wait.Float64
		st.TotalStalls = int(total.Int64)
		st.AvailableStalls = int(available.Int64)
		stations = append(stations, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("station db: rows: %w", err)
	}
	return stations, nil
}
