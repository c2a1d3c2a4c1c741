package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `<?xml version="1.0"?>
<resource-agent name="ip" version="2.0">
  <parameters>
    <parameter name="address" primary="1">
      <content type="string"/>
    </parameter>
    <parameter name="family">
      <content type="string" default="auto"/>
    </parameter>
  </parameters>
  <actions>
    <action name="start" timeout="20"/>
    <action name="status" depth="10" interval="10s"/>
  </actions>
  <special tag="other"><attributes maxinstances="9"/></special>
  <special tag="rgmanager"><attributes maxinstances="1"/></special>
</resource-agent>`

func TestParseMalformed(t *testing.T) {
	for _, in := range []string{
		"",
		"not xml at all",
		"<resource-agent name='x'>",
		"<a></b>",
		"<?xml version=\"1.0\"?>",
	} {
		_, err := Parse([]byte(in))
		assert.ErrorIs(t, err, ErrMalformed, "input %q", in)
	}
}

func TestValueIndexed(t *testing.T) {
	doc, err := Parse([]byte(sample))
	require.NoError(t, err)

	base := Root("resource-agent", 1)
	tests := []struct {
		path Path
		want string
		ok   bool
	}{
		{base.Attr("name"), "ip", true},
		{base.Attr("version"), "2.0", true},
		{base.Attr("missing"), "", false},
		{Root("resource-agent", 2).Attr("name"), "", false},
		{base.Child("parameters", 0).Child("parameter", 2).Attr("name"), "family", true},
		{base.Child("parameters", 0).Child("parameter", 3).Attr("name"), "", false},
		{base.Child("parameters", 0).Child("parameter", 2).Child("content", 0).Attr("default"), "auto", true},
		{base.Child("parameters", 0).Child("parameter", 1).Child("content", 0).Attr("default"), "", false},
		{base.Child("actions", 0).Child("action", 2).Attr("interval"), "10s", true},
		{base.Child("special", 0).Where("tag", "rgmanager").Child("attributes", 0).Attr("maxinstances"), "1", true},
		// Two special blocks carry the attribute: ambiguous.
		{base.Child("special", 0).Child("attributes", 0).Attr("maxinstances"), "", false},
		// All parameters carry a name: ambiguous.
		{base.Child("parameters", 0).Child("parameter", 0).Attr("name"), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.path.String(), func(t *testing.T) {
			got, ok := doc.Value(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHas(t *testing.T) {
	doc, err := Parse([]byte(sample))
	require.NoError(t, err)

	base := Root("resource-agent", 1)
	assert.True(t, doc.Has(base.Child("special", 0)))
	assert.True(t, doc.Has(base.Child("special", 0).Child("attributes", 0).Attr("maxinstances")))
	assert.False(t, doc.Has(base.Child("child", 0)))
	assert.False(t, doc.Has(Path{}))
}

func TestPathIsImmutable(t *testing.T) {
	base := Root("resource-agent", 1).Child("parameters", 0)
	a := base.Child("parameter", 1)
	b := base.Child("parameter", 2)
	_ = base.Where("tag", "x")

	assert.Equal(t, "/resource-agent[1]/parameters/parameter[1]", a.String())
	assert.Equal(t, "/resource-agent[1]/parameters/parameter[2]", b.String())
	assert.Equal(t, "/resource-agent[1]/parameters", base.String())
}

func TestPathString(t *testing.T) {
	p := Root("resource-agent", 3).Child("special", 0).Where("tag", "rgmanager").Child("attributes", 0).Attr("maxinstances")
	assert.Equal(t, `/resource-agent[3]/special[@tag="rgmanager"]/attributes/@maxinstances`, p.String())
}

func TestParseDeclaredEncoding(t *testing.T) {
	latin1 := []byte("<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n" +
		"<resource-agent name=\"caf\xe9\"/>")
	doc, err := Parse(latin1)
	require.NoError(t, err)
	name, ok := doc.Value(Root("resource-agent", 1).Attr("name"))
	require.True(t, ok)
	assert.Equal(t, "café", name)

	_, err = Parse([]byte(`<?xml version="1.0" encoding="x-no-such-charset"?><a/>`))
	assert.ErrorIs(t, err, ErrMalformed)
}
