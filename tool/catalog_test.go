package tool

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name       string
		host       HostTool
		wantParams string
		wantErr    bool
	}{
		{
			name: "map schema",
			host: HostTool{
				Name:        "HassTurnOn",
				Description: "Turns on a device",
				Schema: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"domain": map[string]any{"type": "array"},
					},
				},
			},
			wantParams: `{"type":"object","properties":{"domain":{"type":"array"}}}`,
		},
		{
			name:       "nil schema becomes empty object",
			host:       HostTool{Name: "HassListEntities"},
			wantParams: `{"type":"object","properties":{}}`,
		},
		{
			name: "schema with custom vocabulary survives",
			host: HostTool{
				Name: "HassSetTemperature",
				Schema: map[string]any{
					"type":          "object",
					"x-vendor-hint": "climate",
					"propertyNames": map[string]any{"pattern": "^[a-z_]+$"},
					"required":      []string{"temperature"},
					"minProperties": 1,
				},
			},
			wantParams: `{"type":"object","x-vendor-hint":"climate","propertyNames":{"pattern":"^[a-z_]+$"},"required":["temperature"],"minProperties":1}`,
		},
		{
			name:    "missing name",
			host:    HostTool{Description: "anonymous"},
			wantErr: true,
		},
		{
			name:    "unserializable schema",
			host:    HostTool{Name: "bad", Schema: func() {}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Translate(tt.host)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.host.Name, got.Name)
			assert.Equal(t, tt.host.Description, got.Description)
			assert.JSONEq(t, tt.wantParams, string(got.Parameters))
		})
	}
}

func TestTranslateAll(t *testing.T) {
	hts := []HostTool{
		{Name: "first"},
		{Name: "second"},
	}

	tools, err := TranslateAll(hts)
	require.NoError(t, err)
	require.Len(t, tools, 2)
	assert.Equal(t, "first", tools[0].Name)
	assert.Equal(t, "second", tools[1].Name)

	_, err = TranslateAll([]HostTool{{Name: "ok"}, {}})
	assert.Error(t, err, "one bad descriptor fails the batch")
}

func TestStaticCatalog(t *testing.T) {
	c := NewStaticCatalog()
	assert.Zero(t, c.Len())

	noop := func(ctx context.Context, args map[string]any) (string, error) {
		return "ok", nil
	}

	require.NoError(t, c.Register(HostTool{Name: "HassTurnOn"}, noop))
	require.NoError(t, c.Register(HostTool{Name: "HassTurnOff"}, noop))
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []string{"HassTurnOn", "HassTurnOff"}, c.Names())

	tools := c.Tools()
	require.Len(t, tools, 2)
	assert.Equal(t, "HassTurnOn", tools[0].Name, "registration order is preserved")

	err := c.Register(HostTool{Name: "HassTurnOn"}, noop)
	var dup *AlreadyRegisteredError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "HassTurnOn", dup.Name)
}

func TestStaticCatalogExecute(t *testing.T) {
	c := NewStaticCatalog()
	c.MustRegister(HostTool{Name: "echo"}, func(ctx context.Context, args map[string]any) (string, error) {
		return args["text"].(string), nil
	})

	got, err := c.Execute(context.Background(), "echo", map[string]any{"text": "hello"})
	require.NoError(t, err)
	assert.Equal(t, "hello", got)

	_, err = c.Execute(context.Background(), "missing", nil)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "missing", nf.Name)
}
