package wizard

import "testing"

func TestValidateURI(t *testing.T) {
	valid := []string{
		"neo4j://localhost:7687",
		"neo4j+s://prod.databases.neo4j.io",
		"neo4j+ssc://internal:7687",
		"bolt://localhost:7687",
		"bolt+s://host",
		"  bolt+ssc://host  ",
	}
	for _, uri := range valid {
		if err := ValidateURI(uri); err != nil {
			t.Errorf("ValidateURI(%q) = %v, want nil", uri, err)
		}
	}

	invalid := []string{
		"",
		"   ",
		"http://localhost:7474",
		"localhost:7687",
		"neo4j://",
		"bolt://",
	}
	for _, uri := range invalid {
		if err := ValidateURI(uri); err == nil {
			t.Errorf("ValidateURI(%q) = nil, want error", uri)
		}
	}
}

func TestValidateEnvironmentName(t *testing.T) {
	valid := []string{"local", "staging", "prod-eu", "env_2"}
	for _, name := range valid {
		if err := ValidateEnvironmentName(name); err != nil {
			t.Errorf("ValidateEnvironmentName(%q) = %v, want nil", name, err)
		}
	}

	invalid := []string{"", "  ", "Staging", "prod eu", "env/2"}
	for _, name := range invalid {
		if err := ValidateEnvironmentName(name); err == nil {
			t.Errorf("ValidateEnvironmentName(%q) = nil, want error", name)
		}
	}
}
