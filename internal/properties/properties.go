package properties

import "os"

func RootPath() string {
	return os.Getenv("ROOT_PATH")
}

func DataPath() string {
	return RootPath() + "/data"
}

// DefaultResolution is the target grid cell size in meters used when the
// user does not pick one. Matches the Sentinel-2 visible/NIR bands.
const DefaultResolution = 10.0

func CatalogPath() string {
	if path := os.Getenv("CATALOG_PATH"); path != "" {
		return path
	}
	return DataPath() + "/catalog.yml"
}

func DiscordErrorNotificationUrl() string {
	return os.Getenv("DISCORD_ERROR_NOTIFICATION_URL")
}

func DiscordSuccessNotificationUrl() string {
	return os.Getenv("DISCORD_SUCCESS_NOTIFICATION_URL")
}

func ProcessAPIClientID() string {
	return os.Getenv("PROCESS_API_CLIENT_ID")
}

func ProcessAPIClientSecret() string {
	return os.Getenv("PROCESS_API_CLIENT_SECRET")
}

func ProcessAPITokenURL() string {
	return os.Getenv("PROCESS_API_TOKEN_URL")
}
