// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package arxiv

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/blog-engine/pkg/types"
)

// classicPapers is the built-in seed list used to bootstrap an empty
// corpus: five landmark papers spanning the blog's categories.
var classicPapers = []types.PaperRecord{
	{
		ID:    "1706.03762",
		Title: "Attention Is All You Need",
		Authors: []string{
			"Ashish Vaswani", "Noam Shazeer", "Niki Parmar", "Jakob Uszkoreit",
			"Llion Jones", "Aidan N. Gomez", "Lukasz Kaiser", "Illia Polosukhin",
		},
		Abstract: "The dominant sequence transduction models are based on complex recurrent or convolutional neural networks that include an encoder and a decoder. The best performing models also connect the encoder and decoder through an attention mechanism. We propose a new simple network architecture, the Transformer, based solely on attention mechanisms, dispensing with recurrence and convolutions entirely.",
		Published: time.Date(2017, 6, 12, 0, 0, 0, 0, time.UTC),
		Category:  types.CategoryFoundationModels,
	},
	{
		ID:    "1207.0580",
		Title: "ImageNet Classification with Deep Convolutional Neural Networks",
		Authors: []string{
			"Alex Krizhevsky", "Ilya Sutskever", "Geoffrey E. Hinton",
		},
		Abstract: "We trained a large, deep convolutional neural network to classify the 1.2 million high-resolution images in the ImageNet LSVRC-2010 contest into the 1000 different classes. On the test data, we achieved top-1 and top-5 error rates of 37.5% and 17.0% which is considerably better than the previous state-of-the-art.",
		Published: time.Date(2012, 7, 3, 0, 0, 0, 0, time.UTC),
		Category:  types.CategoryBasicConcepts,
	},
	{
		ID:    "1406.2661",
		Title: "Generative Adversarial Networks",
		Authors: []string{
			"Ian J. Goodfellow", "Jean Pouget-Abadie", "Mehdi Mirza", "Bing Xu",
			"David Warde-Farley", "Sherjil Ozair", "Aaron Courville", "Yoshua Bengio",
		},
		Abstract: "We propose a new framework for estimating generative models via an adversarial process, in which we simultaneously train two models: a generative model G that captures the data distribution, and a discriminative model D that estimates the probability that a sample came from the training data rather than G.",
		Published: time.Date(2014, 6, 10, 0, 0, 0, 0, time.UTC),
		Category:  types.CategoryGenerativeModels,
	},
	{
		ID:    "1810.04805",
		Title: "BERT: Pre-training of Deep Bidirectional Transformers for Language Understanding",
		Authors: []string{
			"Jacob Devlin", "Ming-Wei Chang", "Kenton Lee", "Kristina Toutanova",
		},
		Abstract: "We introduce a new language representation model called BERT, which stands for Bidirectional Encoder Representations from Transformers. Unlike recent language representation models, BERT is designed to pre-train deep bidirectional representations from unlabeled text by jointly conditioning on both left and right context in all layers.",
		Published: time.Date(2018, 10, 11, 0, 0, 0, 0, time.UTC),
		Category:  types.CategoryFoundationModels,
	},
	{
		ID:    "1909.11942",
		Title: "Language Models are Unsupervised Multitask Learners",
		Authors: []string{
			"Alec Radford", "Jeffrey Wu", "Rewon Child", "David Luan",
			"Dario Amodei", "Ilya Sutskever",
		},
		Abstract: "Natural language processing tasks, such as question answering, machine translation, reading comprehension, and summarization, are typically approached with supervised learning on taskspecific datasets. We demonstrate that language models begin to learn these tasks without any explicit supervision when trained on a new dataset of millions of webpages called WebText.",
		Published: time.Date(2019, 2, 14, 0, 0, 0, 0, time.UTC),
		Category:  types.CategoryFoundationModels,
	},
}

// SeedPapers returns the built-in classic paper list. Callers get a copy;
// the seed records themselves never change.
func SeedPapers() []types.PaperRecord {
	papers := make([]types.PaperRecord, len(classicPapers))
	copy(papers, classicPapers)
	return papers
}

// seedFile is the on-disk representation of a seed paper list.
type seedFile struct {
	Papers []types.PaperRecord `yaml:"papers"`
}

// LoadSeedFile reads a YAML seed list, allowing deployments to replace the
// built-in classics without rebuilding.
func LoadSeedFile(path string) ([]types.PaperRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}
	var sf seedFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parsing seed file %s: %w", path, err)
	}
	if len(sf.Papers) == 0 {
		return nil, fmt.Errorf("seed file %s contains no papers", path)
	}
	for i, p := range sf.Papers {
		if p.ID == "" || p.Title == "" {
			return nil, fmt.Errorf("seed file %s: paper %d missing id or title", path, i)
		}
	}
	return sf.Papers, nil
}

// SavePapersFile writes fetched paper metadata to a YAML file so a search
// can be inspected or replayed without re-querying the API.
func SavePapersFile(path string, papers []types.PaperRecord) error {
	data, err := yaml.Marshal(seedFile{Papers: papers})
	if err != nil {
		return fmt.Errorf("marshaling papers: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
