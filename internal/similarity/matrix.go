package similarity

import (
	"errors"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/tbourn/go-chat-analytics/internal/domain"
	"github.com/tbourn/go-chat-analytics/internal/stopwords"
)

// ErrUnavailable is returned when a similarity ranking is requested for the
// OverallUser sentinel or for a sender absent from the matrix (for example
// one whose every message was a media placeholder).
var ErrUnavailable = errors.New("similarity unavailable for this selection")

// Matrix is the symmetric user-to-user similarity table. Values[i][j] is
// the cosine similarity of Users[i] and Users[j] in [0,1]; the diagonal is
// exactly 1.
type Matrix struct {
	Users  []string    `json:"users"`
	Values [][]float64 `json:"values"`
}

// UserSimilarity is one row of a top-similar ranking, as a percentage.
type UserSimilarity struct {
	User       string  `json:"user"`
	Percentage float64 `json:"percentage"`
}

// Build creates the similarity matrix for a collection.
//
// Group notifications and media placeholders are excluded; each remaining
// message is normalized and the per-message strings are joined into one
// document per sender. Documents are TF-IDF vectorized over the sender
// corpus and compared pairwise with cosine similarity. A sender appears in
// the matrix iff they have at least one qualifying message.
func Build(msgs domain.Collection, stop stopwords.Set) Matrix {
	docs := make(map[string][]string, 8)
	order := make([]string, 0, 8)
	for _, m := range msgs {
		if m.IsNotification() || m.IsMedia() {
			continue
		}
		if _, ok := docs[m.Sender]; !ok {
			order = append(order, m.Sender)
		}
		docs[m.Sender] = append(docs[m.Sender], normalize(m.Text, stop))
	}
	sort.Strings(order)
	if len(order) == 0 {
		return Matrix{Users: []string{}, Values: [][]float64{}}
	}

	joined := make([]string, len(order))
	for i, u := range order {
		joined[i] = strings.Join(docs[u], " ")
	}

	return Matrix{Users: order, Values: cosineMatrix(tfidf(joined))}
}

// tfidf vectorizes documents with smoothed inverse document frequency
// (idf = ln((1+n)/(1+df)) + 1) and L2-normalized rows, so row dot products
// are cosine similarities directly.
func tfidf(docs []string) *mat.Dense {
	n := len(docs)

	vocab := make(map[string]int, 256)
	counts := make([]map[string]int, n)
	for i, d := range docs {
		counts[i] = make(map[string]int, 32)
		for _, tok := range strings.Fields(d) {
			if _, ok := vocab[tok]; !ok {
				vocab[tok] = len(vocab)
			}
			counts[i][tok]++
		}
	}
	terms := len(vocab)
	if terms == 0 {
		terms = 1 // all-empty documents vectorize to zero rows
	}

	df := make([]int, terms)
	for _, c := range counts {
		for tok := range c {
			df[vocab[tok]]++
		}
	}

	m := mat.NewDense(n, terms, nil)
	for i, c := range counts {
		for tok, tf := range c {
			j := vocab[tok]
			idf := math.Log(float64(1+n)/float64(1+df[j])) + 1
			m.Set(i, j, float64(tf)*idf)
		}
		// L2-normalize the row.
		row := m.RawRowView(i)
		var norm float64
		for _, v := range row {
			norm += v * v
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for j := range row {
				row[j] /= norm
			}
		}
	}
	return m
}

// cosineMatrix computes the pairwise similarity grid from L2-normalized
// row vectors. Values are clamped to [0,1] against floating-point drift and
// the diagonal is pinned to exactly 1.
func cosineMatrix(vecs *mat.Dense) [][]float64 {
	n, _ := vecs.Dims()
	var sim mat.Dense
	sim.Mul(vecs, vecs.T())

	out := make([][]float64, n)
	for i := 0; i < n; i++ {
		out[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			v := sim.At(i, j)
			if v < 0 {
				v = 0
			} else if v > 1 {
				v = 1
			}
			out[i][j] = v
		}
		out[i][i] = 1
	}
	return out
}

// TopSimilar ranks every other user by similarity to selectedUser,
// descending, converted to percentages. The queried user never appears in
// their own ranking. A single-sender matrix yields an empty list; the
// OverallUser sentinel or an absent sender yields ErrUnavailable.
func TopSimilar(m Matrix, selectedUser string) ([]UserSimilarity, error) {
	if selectedUser == domain.OverallUser {
		return nil, ErrUnavailable
	}
	idx := -1
	for i, u := range m.Users {
		if u == selectedUser {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrUnavailable
	}

	out := make([]UserSimilarity, 0, len(m.Users)-1)
	for i, u := range m.Users {
		if i == idx {
			continue
		}
		out = append(out, UserSimilarity{User: u, Percentage: m.Values[idx][i] * 100})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Percentage != out[j].Percentage {
			return out[i].Percentage > out[j].Percentage
		}
		return out[i].User < out[j].User
	})
	return out, nil
}
