package settings_service

import "fmt"

type migration func(doc map[string]interface{}) map[string]interface{}

// migrations[n] upgrades a version n document to version n+1.
var migrations = []migration{
	migrateV0,
	migrateV1,
}

func documentVersion(doc map[string]interface{}) (int, error) {
	raw, ok := doc["version"]
	if !ok {
		return 0, nil
	}

	switch v := raw.(type) {
	case float64:
		return int(v), nil
	case int:
		return v, nil
	}

	return 0, fmt.Errorf("%w: %v", ErrUnsupportedVersion, raw)
}

// Migrate upgrades doc in place to CurrentVersion.
func Migrate(doc map[string]interface{}) (map[string]interface{}, error) {
	version, err := documentVersion(doc)
	if err != nil {
		return nil, err
	}
	if version < 0 || version > CurrentVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	for ; version < CurrentVersion; version++ {
		doc = migrations[version](doc)
		doc["version"] = version + 1
	}

	return doc, nil
}

func section(doc map[string]interface{}, name string) map[string]interface{} {
	if s, ok := doc[name].(map[string]interface{}); ok {
		return s
	}

	s := make(map[string]interface{})
	doc[name] = s

	return s
}

func move(from map[string]interface{}, fromKey string, to map[string]interface{}, toKey string) {
	if v, ok := from[fromKey]; ok {
		to[toKey] = v
	}
}

// migrateV0 turns the flat, unversioned blob into sections.
func migrateV0(flat map[string]interface{}) map[string]interface{} {
	doc := make(map[string]interface{})

	profile := section(doc, "profile")
	move(flat, "displayName", profile, "display_name")
	move(flat, "language", profile, "language")
	move(flat, "timezone", profile, "timezone")

	security := section(doc, "security")
	move(flat, "twoFactorEnabled", security, "two_factor_enabled")
	move(flat, "loginAlerts", security, "login_alerts")

	trading := section(doc, "trading")
	move(flat, "defaultOrderType", trading, "default_order_type")
	move(flat, "confirmOrders", trading, "confirm_orders")

	appearance := section(doc, "appearance")
	move(flat, "theme", appearance, "theme")
	move(flat, "chartStyle", appearance, "chart_style")
	move(flat, "compactMode", appearance, "compact_mode")

	notifications := section(doc, "notifications")
	move(flat, "emailNotifications", notifications, "email")
	move(flat, "pushNotifications", notifications, "push")
	move(flat, "priceAlerts", notifications, "price_alerts")
	move(flat, "orderUpdates", notifications, "order_updates")

	return doc
}

// migrateV1 adds the default time-in-force and the session timeout.
func migrateV1(doc map[string]interface{}) map[string]interface{} {
	trading := section(doc, "trading")
	if _, ok := trading["default_time_in_force"]; !ok {
		trading["default_time_in_force"] = "GTC"
	}

	security := section(doc, "security")
	if _, ok := security["session_timeout_minutes"]; !ok {
		security["session_timeout_minutes"] = 30
	}

	return doc
}
