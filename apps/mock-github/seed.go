package main

// seedRepos populates the store with repositories that exercise every pipeline
// path: a default-branch lookup, a feature branch, a commit SHA, a pull
// request, and a binary file the filter engine must reject.
func seedRepos(s *store) {
	mainFiles := map[string]string{
		"README.md":        "# billing-api\n\nHandles invoices.\n",
		"src/main.go":      "package main\n\nfunc main() {}\n",
		"src/invoice.go":   "package main\n\ntype Invoice struct{ ID string }\n",
		"docs/design.md":   "# Design\n\nSingle service, one database.\n",
		"assets/logo.png":  "\x89PNG\r\n\x1a\n\x00fake-binary-payload",
		"vendor/dep/a.go":  "package dep\n",
		".github/ci.yaml":  "on: push\n",
		"srcold/legacy.go": "package legacy\n",
	}

	featureFiles := map[string]string{
		"README.md":   "# billing-api (feature)\n",
		"src/main.go": "package main\n\nfunc main() { println(\"feature\") }\n",
	}

	const prHeadSHA = "0dec0ded0dec0ded0dec0ded0dec0ded0dec0ded"

	s.repos["acme/billing-api"] = &repo{
		defaultBranch: "main",
		refs: map[string]map[string]string{
			"main":         mainFiles,
			"feature/wire": featureFiles,
			prHeadSHA:      featureFiles,
		},
		prs: map[int]string{42: prHeadSHA},
	}

	s.repos["acme/empty"] = &repo{
		defaultBranch: "main",
		refs: map[string]map[string]string{
			"main": {".keep": ""},
		},
		prs: map[int]string{},
	}
}
