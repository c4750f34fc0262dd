package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "STORAGE_DRIVER", "DB_PATH", "STORAGE_KEY", "HOME_LAT", "HOME_LNG",
		"MAP_ZOOM_LEVEL", "HTTP_TIMEOUT", "ANNOTATION_RETRY_INTERVAL", "OPENMETEO_ENABLED"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "sqlite", cfg.StorageDriver)
	require.Equal(t, "workout", cfg.StorageKey)
	require.Equal(t, 13, cfg.MapZoomLevel)
	require.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	require.Equal(t, 30*time.Minute, cfg.AnnotationRetryInterval)
	require.True(t, cfg.OpenMeteoEnabled)
	require.Nil(t, cfg.Home)
}

func TestLoadHome(t *testing.T) {
	t.Setenv("HOME_LAT", "45.25")
	t.Setenv("HOME_LNG", "19.84")

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg.Home)
	require.Equal(t, 45.25, cfg.Home.Lat)
	require.Equal(t, 19.84, cfg.Home.Lng)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("HOME_LAT", "95")
	t.Setenv("HOME_LNG", "0")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("HOME_LAT", "")
	t.Setenv("HOME_LNG", "")
	t.Setenv("STORAGE_DRIVER", "postgres")
	_, err = Load()
	require.Error(t, err)

	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("HTTP_TIMEOUT", "soon")
	_, err = Load()
	require.Error(t, err)
}
