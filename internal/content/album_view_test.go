package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAlbumView(t *testing.T) {
	products, err := ParseMusicProducts(readFixture(t, "musica.json"))
	require.NoError(t, err)

	got := BuildAlbumView(products[0], "56949260725")
	want := AlbumView{
		Title:          "Raíces (CD)",
		Slug:           "raices-cd",
		ForSale:        true,
		Price:          15000,
		Description:    "<p>Edición física</p>",
		SpotifyURL:     "https://open.spotify.com/album/raices",
		ImageURL:       "https://cms.test/cd-1024.jpg",
		FormattedPrice: "$15.000",
		WhatsAppURL: "https://wa.me/56949260725?text=Hola!%20Me%20interesa%20el%20disco%20%22Ra%C3%ADces%20(CD)%22" +
			"%20por%20%2415.000.%20%C2%BFEst%C3%A1%20disponible%3F",
	}
	assert.Equal(t, want, got)

	assert.Equal(t, got, BuildAlbumView(products[0], "56949260725"))
}

func TestBuildAlbumViewDefaults(t *testing.T) {
	p := MusicProduct{Product: Product{Slug: "x", Title: Rendered{Rendered: "X"}}}
	v := BuildAlbumView(p, "1")
	assert.False(t, v.ForSale)
	assert.Equal(t, 0.0, v.Price)
	assert.Equal(t, "$0", v.FormattedPrice)
	assert.Equal(t, "", v.ImageURL)
	assert.Equal(t, "", v.Description)
	assert.Equal(t, "https://wa.me/1?text=Hola!%20Me%20interesa%20el%20disco%20%22X%22%20por%20%240.%20%C2%BFEst%C3%A1%20disponible%3F", v.WhatsAppURL)
}

func TestEscapeComponent(t *testing.T) {
	assert.Equal(t, "a%20b!~*'()-_.", EscapeComponent("a b!~*'()-_."))
	assert.Equal(t, "%2B%26%3D%2F", EscapeComponent("+&=/"))
}

func TestBuildMerchView(t *testing.T) {
	products, err := ParseMusicProducts(readFixture(t, "musica.json"))
	require.NoError(t, err)

	v := BuildMerchView(products[1])
	assert.Equal(t, "$12.991", v.FormattedPrice)
	assert.Equal(t, []Attribute{{"Color", "Negro"}, {"Visera", "Plana"}}, v.Attributes)
	assert.Equal(t, []string{"S", "M", "L"}, v.Sizes)
	assert.Equal(t, "", v.ImageURL)

	c := BuildClothingView(ClothingProduct{Product: Product{Title: Rendered{Rendered: "Polera"}}})
	assert.Equal(t, []string{}, c.Sizes)
	assert.Equal(t, "$0", c.FormattedPrice)
}
