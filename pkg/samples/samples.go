// Package samples provides built-in code snippets for trying the analyzer
// without pasting anything.
package samples

import (
	"github.com/SuryaShavi/ChatBotOrigin/pkg/types"
)

var snippets = map[types.Language]string{
	types.LanguageJavaScript: `function debounce(fn, delay) {
  let timer = null;
  return function (...args) {
    clearTimeout(timer);
    timer = setTimeout(() => fn.apply(this, args), delay);
  };
}`,
	types.LanguagePython: `def fibonacci(n):
    a, b = 0, 1
    for _ in range(n):
        a, b = b, a + b
    return a


print([fibonacci(i) for i in range(10)])`,
	types.LanguageJava: `public class Counter {
    private int value;

    public synchronized int increment() {
        return ++value;
    }

    public synchronized int get() {
        return value;
    }
}`,
	types.LanguageCPP: `#include <vector>
#include <numeric>

double mean(const std::vector<double>& xs) {
    if (xs.empty()) return 0.0;
    return std::accumulate(xs.begin(), xs.end(), 0.0) / xs.size();
}`,
	types.LanguageTypeScript: `interface Point {
  x: number;
  y: number;
}

function distance(a: Point, b: Point): number {
  return Math.hypot(a.x - b.x, a.y - b.y);
}`,
	types.LanguageRust: `fn largest<T: PartialOrd>(list: &[T]) -> Option<&T> {
    let mut it = list.iter();
    let mut largest = it.next()?;
    for item in it {
        if item > largest {
            largest = item;
        }
    }
    Some(largest)
}`,
	types.LanguageGo: `func unique(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := values[:0]
	for _, v := range values {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}`,
}

// Get returns the sample snippet for a language.
func Get(lang types.Language) (string, bool) {
	snippet, ok := snippets[lang]
	return snippet, ok
}

// Languages returns the languages that have a sample, in display order.
func Languages() []types.Language {
	out := make([]types.Language, 0, len(snippets))
	for _, lang := range types.Languages() {
		if _, ok := snippets[lang]; ok {
			out = append(out, lang)
		}
	}
	return out
}
