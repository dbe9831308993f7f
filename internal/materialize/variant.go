package materialize

// Variant is the file set of a generated project. It is chosen once from
// the answers and never changes during a run.
type Variant int

const (
	WithoutSockets Variant = iota
	WithSockets
)

// VariantFor picks the variant matching the websockets answer.
func VariantFor(a Answers) Variant {
	if a.Websockets {
		return WithSockets
	}
	return WithoutSockets
}

func (v Variant) String() string {
	if v == WithSockets {
		return "with-sockets"
	}
	return "without-sockets"
}

type manifestContext struct {
	Name          string
	Author        string
	UseWebsockets bool
}

type nameContext struct {
	Name string
}

type mainContext struct {
	UseWebsockets bool
}

type secretContext struct {
	DBName    string
	JWTSecret string
}

func byName(a Answers, _ string) any { return nameContext{Name: a.Name} }

// RenderFiles lists the templates rendered without the secret.
func (v Variant) RenderFiles() []File {
	files := []File{
		{Source: tmpl("package.json"), Dest: "package.json", Context: func(a Answers, _ string) any {
			return manifestContext{Name: a.Name, Author: a.Author, UseWebsockets: a.Websockets}
		}},
		{Source: tmpl("README.md"), Dest: "README.md", Context: byName},
		{Source: tmpl("app/main.ts"), Dest: "app/main.ts", Context: func(a Answers, _ string) any {
			return mainContext{UseWebsockets: a.Websockets}
		}},
		{Source: tmpl("app/server.ts"), Dest: "app/server.ts", Context: byName},
	}
	if v == WithSockets {
		files = append(files, File{Source: tmpl("app/sockets.ts"), Dest: "app/sockets.ts", Context: func(Answers, string) any {
			return struct{}{}
		}})
	}
	return append(files, File{Source: tmpl("app/libraries/Log.ts"), Dest: "app/libraries/Log.ts", Context: byName})
}

// SecretFiles lists the templates that embed the JWT secret. They are the
// same for every variant.
func SecretFiles() []File {
	ctx := func(a Answers, secret string) any {
		return secretContext{DBName: a.DBName, JWTSecret: secret}
	}
	return []File{
		{Source: tmpl("app/config/config.ts"), Dest: "app/config/config.ts", Context: ctx},
		{Source: tmpl(".env"), Dest: ".env", Private: true, Context: ctx},
		{Source: tmpl(".env.example"), Dest: ".env.example", Context: ctx},
	}
}
