package web

import (
	"github.com/flosch/pongo2/v6"

	"seraph.si/v2/bfhl-form/src/form"
)

var pageTemplate = pongo2.Must(pongo2.FromString(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{ title }}</title>
<style>
body { background: #eff6ff; font-family: system-ui, sans-serif; margin: 0; padding: 3rem 1rem; }
main { max-width: 48rem; margin: 0 auto; }
h1 { color: #1e40af; text-align: center; }
textarea { width: 100%; height: 8rem; box-sizing: border-box; padding: .5rem; border-radius: .5rem; resize: none; }
button { margin-top: 1rem; width: 100%; padding: .5rem; border: 0; border-radius: .5rem; background: #2563eb; color: #fff; font-weight: 600; }
fieldset { border: 1px solid #3b82f6; border-radius: .5rem; }
.error { color: #dc2626; }
.notice { color: #1e40af; }
.result { margin-top: 1.5rem; background: #fff; padding: 1.5rem; border-radius: .5rem; }
</style>
</head>
<body>
<main>
<h1>{{ title }}</h1>
<form method="post" action="/submit">
<textarea name="input" placeholder="Enter JSON input">{{ input }}</textarea>
<button type="submit">Submit</button>
</form>
{% if notice %}<p class="notice">{{ notice }}</p>{% endif %}
{% if error %}<p class="error">{{ error }}</p>{% endif %}
{% if has_result %}
<form method="post" action="/fields">
<fieldset>
<legend>Select fields to display</legend>
{% for opt in options %}<label><input type="checkbox" name="fields" value="{{ opt.Value }}"{% if opt.Selected %} checked{% endif %}> {{ opt.Label }}</label>
{% endfor %}</fieldset>
<button type="submit">Show</button>
</form>
{% if blocks %}<section class="result">
{% for b in blocks %}<p><strong>{{ b.Label }}:</strong> {{ b.Text }}</p>
{% endfor %}</section>{% endif %}
{% endif %}
</main>
</body>
</html>
`))

type option struct {
	Value    string
	Label    string
	Selected bool
}

func renderPage(state form.State, notice string) (string, error) {
	options := make([]option, len(form.Fields))
	for i, f := range form.Fields {
		options[i] = option{Value: string(f), Label: f.Label(), Selected: state.Selected.Has(f)}
	}

	return pageTemplate.Execute(pongo2.Context{
		"title":      "BFHL Form",
		"input":      state.Input,
		"notice":     notice,
		"error":      state.ErrorMessage(),
		"has_result": state.Result != nil,
		"options":    options,
		"blocks":     state.Blocks(),
	})
}
