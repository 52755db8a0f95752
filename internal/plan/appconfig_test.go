package plan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/roomfit/internal/model"
)

func TestLoadAppConfigMissingFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	config, err := LoadAppConfig(path)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultAppConfig(), config)
}

func TestSaveLoadAppConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	config := model.DefaultAppConfig()
	config.OutputDir = "/tmp/out"
	config.AddRecentPlan("kitchen.json")
	config.AddRecentPlan("office.json")
	require.NoError(t, SaveAppConfig(path, config))

	loaded, err := LoadAppConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/out", loaded.OutputDir)
	assert.Equal(t, []string{"office.json", "kitchen.json"}, loaded.RecentPlans)
}

func TestLoadAppConfigNilRecentPlans(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, SaveAppConfig(path, model.AppConfig{}))

	loaded, err := LoadAppConfig(path)
	require.NoError(t, err)
	assert.NotNil(t, loaded.RecentPlans)
}

func TestSaveLoadTemplates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.json")

	store := model.NewTemplateStore()
	store.Add(model.NewPlanTemplate("kitchen basics", "fridge plus shelf", []model.ItemSpec{
		model.NewItemSpec("fridge", 90, 70),
		model.NewItemSpec("shelf", 120, 40),
	}))
	require.NoError(t, SaveTemplates(path, store))

	loaded, err := LoadTemplates(path)
	require.NoError(t, err)
	require.Len(t, loaded.Templates, 1)
	assert.Equal(t, "kitchen basics", loaded.Templates[0].Name)
	assert.Len(t, loaded.Templates[0].Items, 2)
}

func TestLoadTemplatesMissingFile(t *testing.T) {
	store, err := LoadTemplates(filepath.Join(t.TempDir(), "templates.json"))
	require.NoError(t, err)
	assert.Empty(t, store.Templates)
	assert.NotNil(t, store.Templates)
}

func TestBackupRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup", "all.json")

	config := model.DefaultAppConfig()
	config.AddRecentPlan("kitchen.json")
	store := model.NewTemplateStore()
	store.Add(model.NewPlanTemplate("laundry", "", []model.ItemSpec{
		model.NewItemSpec("washer", 60, 60),
	}))

	require.NoError(t, ExportAllData(path, config, store))

	backup, err := ImportAllData(path)
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", backup.Version)
	assert.NotEmpty(t, backup.CreatedAt)
	assert.Equal(t, []string{"kitchen.json"}, backup.Config.RecentPlans)
	require.Len(t, backup.Templates.Templates, 1)
	assert.Equal(t, "laundry", backup.Templates.Templates[0].Name)
}

func TestImportAllDataRejectsMissingVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, SaveAppConfig(path, model.AppConfig{}))

	_, err := ImportAllData(path)
	assert.ErrorContains(t, err, "version")
}

func TestLoadAppConfigFillsZeroTolerances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, SaveAppConfig(path, model.AppConfig{OutputDir: "/tmp/out"}))

	loaded, err := LoadAppConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/out", loaded.OutputDir)
	assert.Equal(t, 0.999, loaded.DefaultCoverageRatio)
	assert.Equal(t, 1e-6, loaded.DefaultDoorOverlapArea)
	assert.Equal(t, 0.01, loaded.DefaultCollisionRatio)
}

func TestLoadTemplatesNormalizesItems(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.json")

	// Hand-edited file: swapped dimensions, kind field omitted.
	raw := `{"templates":[{"id":"ab12","name":"kitchen","items":[
		{"id":"cd34","name":"fridge","length":70,"width":90},
		{"id":"ef56","name":"shelf","length":120,"width":40}
	]}]}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0644))

	store, err := LoadTemplates(path)
	require.NoError(t, err)
	require.Len(t, store.Templates, 1)
	items := store.Templates[0].Items

	require.Len(t, items, 2)
	assert.Equal(t, 90.0, items[0].Length)
	assert.Equal(t, 70.0, items[0].Width)
	assert.Equal(t, model.ItemRefrigerator, items[0].Kind)
	assert.Equal(t, model.ItemStandard, items[1].Kind)
}

func TestApplyTemplate(t *testing.T) {
	store := model.NewTemplateStore()
	store.Add(model.NewPlanTemplate("kitchen basics", "", []model.ItemSpec{
		model.NewItemSpec("fridge", 90, 70),
		model.NewItemSpec("shelf", 120, 40),
	}))

	p := model.RoomPlan{Name: "studio", Items: []model.ItemSpec{
		model.NewItemSpec("old table", 80, 80),
	}}

	applied, err := ApplyTemplate(store, "kitchen basics", p)
	require.NoError(t, err)
	require.Len(t, applied.Items, 2)
	assert.Equal(t, "studio", applied.Name)
	assert.Equal(t, model.ItemRefrigerator, applied.Items[0].Kind)
	assert.NotEqual(t, store.Templates[0].Items[0].ID, applied.Items[0].ID)
}

func TestApplyTemplateUnknownName(t *testing.T) {
	store := model.NewTemplateStore()
	store.Add(model.NewPlanTemplate("laundry", "", nil))

	_, err := ApplyTemplate(store, "garage", model.RoomPlan{})
	require.Error(t, err)
	assert.ErrorContains(t, err, "laundry")
}

func TestRestoreAllData(t *testing.T) {
	dir := t.TempDir()
	backupFile := filepath.Join(dir, "all.json")
	configPath := filepath.Join(dir, "config.json")
	templatesPath := filepath.Join(dir, "templates.json")

	config := model.DefaultAppConfig()
	config.OutputDir = "/srv/plans"
	store := model.NewTemplateStore()
	store.Add(model.NewPlanTemplate("laundry", "", []model.ItemSpec{
		model.NewItemSpec("washer", 60, 60),
	}))
	require.NoError(t, ExportAllData(backupFile, config, store))

	backup, err := RestoreAllData(backupFile, configPath, templatesPath)
	require.NoError(t, err)
	assert.Equal(t, "/srv/plans", backup.Config.OutputDir)

	loadedConfig, err := LoadAppConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, "/srv/plans", loadedConfig.OutputDir)

	loadedStore, err := LoadTemplates(templatesPath)
	require.NoError(t, err)
	require.Len(t, loadedStore.Templates, 1)
	assert.Equal(t, "laundry", loadedStore.Templates[0].Name)
}
