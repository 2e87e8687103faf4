package rendering

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	h "maragu.dev/gomponents/html"
)

func TestUniversalRenderer(t *testing.T) {
	r := NewUniversalRenderer()
	ctx := context.Background()

	t.Run("gomponents node", func(t *testing.T) {
		out, err := r.RenderComponent(ctx, h.P(h.Class("x")))
		require.NoError(t, err)
		assert.Equal(t, `<p class="x"></p>`, string(out))
	})

	t.Run("templ component", func(t *testing.T) {
		comp := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			_, err := io.WriteString(w, "<b>hi</b>")
			return err
		})
		out, err := r.RenderComponent(ctx, comp)
		require.NoError(t, err)
		assert.Equal(t, "<b>hi</b>", string(out))
	})

	t.Run("unsupported type", func(t *testing.T) {
		_, err := r.RenderComponent(ctx, 42)
		assert.Error(t, err)
	})

	t.Run("echo render sets html content type", func(t *testing.T) {
		e := echo.New()
		e.Renderer = r
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

		require.NoError(t, c.Render(http.StatusOK, "", h.Div()))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/html")
		assert.Equal(t, "<div></div>", rec.Body.String())
	})
}
