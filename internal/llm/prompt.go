package llm

import "fmt"

const promptTemplate = `You are an expert Java developer writing unit tests.

Write a complete JUnit 5 test class named %s for the Java source below.
Requirements:
- Cover every public method, including edge cases.
- The class must compile on its own: include the package declaration and all imports.
- Respond with a single Java code block and nothing else: no explanation before or after the code.

Source:
%s`

// BuildPrompt renders the test-generation prompt for one source variant.
// testClassName is the name the generated class must carry, so tests for
// different variants can coexist in the same test tree.
func BuildPrompt(source, testClassName string) string {
	return fmt.Sprintf(promptTemplate, testClassName, source)
}
