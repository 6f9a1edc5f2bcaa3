package export

import (
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broady/objcbridge/objcgen/bridge"
	"github.com/broady/objcbridge/objcgen/ir"
	"github.com/broady/objcbridge/objcgen/objc"
)

const pairDoc = `
name: app
files:
  - name: Pair.kt
    package: com.example
    classes:
      - name: Pair
        typeParameters: [A, B]
        constructors:
          - params:
              - {name: first, type: A}
              - {name: second, type: B}
        members:
          - {name: first, type: A}
          - {name: second, type: B}
    members:
      - name: makePair
        returns: "com.example.Pair<Int, std.String>"
`

func TestGenerate_GenericClass(t *testing.T) {
	h := generate(t, pairDoc)

	assert.Equal(t, strings.Join([]string{
		`__attribute__((objc_subclassing_restricted))`,
		`__attribute__((swift_name("Pair")))`,
		`@interface SharedPair<A, B> : SharedBase`,
		`- (instancetype)initWithFirst:(A)first second:(B)second __attribute__((swift_name("init(first:second:)"))) __attribute__((objc_designated_initializer));`,
		`@property (readonly) A first;`,
		`@property (readonly) B second;`,
		`@end`,
	}, "\n"), stubText(t, h, "SharedPair"))

	assert.Equal(t, strings.Join([]string{
		`__attribute__((objc_subclassing_restricted))`,
		`__attribute__((swift_name("PairKt")))`,
		`@interface SharedPairKt : SharedBase`,
		`+ (SharedPair<SharedInt *, NSString *> *)makePair;`,
		`@end`,
	}, "\n"), stubText(t, h, "SharedPairKt"))

	assert.Empty(t, h.ClassForward)
	assert.Empty(t, h.ProtocolForward)
	assert.Empty(t, h.Warnings)
	assert.Equal(t, len(h.Stubs)-2, stubIndex(h, "SharedPair"), "seeded stubs come first")
}

func TestGenerate_GenericsDisabled(t *testing.T) {
	h := generate(t, pairDoc, func(o *Options) { o.Generics = false })

	pair := classInterface(t, h, "SharedPair")
	assert.Empty(t, pair.Generics)
	assert.Equal(t, []string{
		`- (instancetype)initWithFirst:(id)first second:(id)second __attribute__((swift_name("init(first:second:)"))) __attribute__((objc_designated_initializer));`,
		`@property (readonly) id first;`,
		`@property (readonly) id second;`,
	}, memberSignatures(t, h, "SharedPair"))
	assert.Equal(t, []string{`+ (SharedPair *)makePair;`}, memberSignatures(t, h, "SharedPairKt"))
	assert.Contains(t, stubText(t, h, "SharedMutableSet"), "@interface SharedMutableSet : NSMutableSet")
}

func TestGenerate_NullableTypeParameterProperty(t *testing.T) {
	h := generate(t, `
name: app
files:
  - name: Pair.kt
    package: com.example
    classes:
      - name: Pair
        typeParameters: [A]
        members:
          - {name: first, type: "A?"}
`)

	assert.Equal(t, []string{`@property (readonly) A _Nullable first;`}, memberSignatures(t, h, "SharedPair"))
	assert.Equal(t, 1, countDeclarations(h, "SharedPair"))
	assert.Empty(t, h.ClassForward)
	assert.Empty(t, h.ProtocolForward)
	assert.Empty(t, h.Warnings)
}

func TestGenerate_ValueTypes(t *testing.T) {
	h := generate(t, `
name: app
files:
  - name: Values.kt
    package: com.example
    classes:
      - name: Values
        members:
          - name: scale
            params: [{name: factor, type: Float}]
            returns: Long
          - {name: flag, type: Boolean}
          - {name: letter, type: Char}
          - {name: count, type: Int}
          - {name: big, type: ULong}
          - {name: ratio, type: Double}
          - {name: raw, type: Pointer}
          - {name: maybeRaw, type: "Pointer?"}
          - {name: maybeCount, type: "Int?"}
          - {name: label, type: "std.String?"}
`)

	assert.Equal(t, []string{
		`- (int64_t)scaleFactor:(float)factor __attribute__((swift_name("scale(factor:)")));`,
		`@property (readonly) BOOL flag;`,
		`@property (readonly) unichar letter;`,
		`@property (readonly) int32_t count;`,
		`@property (readonly) uint64_t big;`,
		`@property (readonly) double ratio;`,
		`@property (readonly) void * raw;`,
		`@property (readonly) void * _Nullable maybeRaw;`,
		`@property (readonly) SharedInt * _Nullable maybeCount;`,
		`@property (readonly) NSString * _Nullable label;`,
	}, memberSignatures(t, h, "SharedValues"))
}

func TestGenerate_ForwardDeclarations(t *testing.T) {
	h := generate(t, `
name: app
files:
  - name: Graph.kt
    package: com.example
    classes:
      - name: Node
        members:
          - {name: next, type: "com.example.Node?"}
          - {name: owner, type: com.example.Tree}
      - name: Dog
        superClass: com.example.Animal
      - name: Animal
        modality: open
      - name: Tree
        members:
          - {name: root, type: com.example.Node}
          - {name: nodes, type: "std.collections.List<com.example.Node>"}
          - {name: pets, type: "std.collections.List<com.example.Dog>"}
`)

	assert.Equal(t, []string{"SharedTree"}, h.ClassForward)
	assert.Equal(t, []string{
		`@property (readonly) SharedNode * _Nullable next;`,
		`@property (readonly) SharedTree *owner;`,
	}, memberSignatures(t, h, "SharedNode"))
	assert.Equal(t, []string{
		`@property (readonly) SharedNode *root;`,
		`@property (readonly) NSArray<SharedNode *> *nodes;`,
		`@property (readonly) NSArray<SharedDog *> *pets;`,
	}, memberSignatures(t, h, "SharedTree"))

	for _, name := range []string{"SharedNode", "SharedDog", "SharedAnimal", "SharedTree"} {
		assert.Equal(t, 1, countDeclarations(h, name), name)
	}
	assert.Less(t, stubIndex(h, "SharedAnimal"), stubIndex(h, "SharedDog"), "superclass first")
	assert.Equal(t, "SharedAnimal", classInterface(t, h, "SharedDog").SuperClass)
	assert.NotContains(t, classInterface(t, h, "SharedAnimal").Attributes, objc.SubclassingRestrictedAttribute)
}

func TestGenerate_ReferencedClassesFromOtherModules(t *testing.T) {
	app, err := ir.DecodeModule([]byte(`
name: app
files:
  - name: App.kt
    package: com.example
    classes:
      - name: Session
        members:
          - {name: helper, type: org.lib.Helper}
`), ir.FormatYAML)
	require.NoError(t, err)
	lib, err := ir.DecodeModule([]byte(`
name: lib
files:
  - name: Helper.kt
    package: org.lib
    classes:
      - name: Helper
      - name: Unused
`), ir.FormatYAML)
	require.NoError(t, err)
	u := ir.NewUniverse(app, lib)
	require.Empty(t, u.Validate())

	opts := DefaultOptions()
	opts.Modules = []string{"app"}
	h, err := NewHeaderGenerator(opts).Generate(u)
	require.NoError(t, err)

	assert.Equal(t, []string{`@property (readonly) SharedLibHelper *helper;`}, memberSignatures(t, h, "SharedSession"))
	assert.Equal(t, []string{"SharedLibHelper"}, h.ClassForward)
	assert.Greater(t, stubIndex(h, "SharedLibHelper"), stubIndex(h, "SharedSession"))
	assert.Equal(t, -1, stubIndex(h, "SharedLibUnused"))
	assert.Contains(t, classInterface(t, h, "SharedLibHelper").Attributes, objc.SwiftNameAttribute("LibHelper"))
}

func TestGenerate_OverridesAreNotRedeclared(t *testing.T) {
	h := generate(t, `
name: app
files:
  - name: Tree.kt
    package: com.example
    classes:
      - name: Parent
        modality: open
        members:
          - {name: foo, returns: Int}
          - {name: item, returns: std.Any}
          - {name: size, type: Int}
      - name: Child
        superClass: com.example.Parent
        members:
          - {name: foo, returns: Int, overrides: [com.example.Parent.foo]}
          - {name: item, returns: std.String, overrides: [com.example.Parent.item]}
          - {name: size, type: Int, overrides: [com.example.Parent.size]}
`)

	assert.Equal(t, []string{
		`- (int32_t)foo;`,
		`- (id)item;`,
		`@property (readonly) int32_t size;`,
	}, memberSignatures(t, h, "SharedParent"))
	assert.Equal(t, []string{`- (NSString *)item;`}, memberSignatures(t, h, "SharedChild"))
}

func TestGenerate_ProtocolMembersNotRedeclared(t *testing.T) {
	h := generate(t, `
name: app
files:
  - name: Shapes.kt
    package: com.example
    classes:
      - name: Shape
        kind: interface
        members:
          - {name: area, returns: Double}
      - name: Circle
        superInterfaces: [com.example.Shape]
        members:
          - {name: area, returns: Double, overrides: [com.example.Shape.area]}
          - {name: radius, type: Double}
`)

	shape := h.Stub("SharedShape")
	require.IsType(t, &objc.Protocol{}, shape)
	assert.Equal(t, []string{`- (double)area;`}, signatures(shape.(*objc.Protocol).Members))
	assert.Contains(t, stubText(t, h, "SharedCircle"), "@interface SharedCircle : SharedBase <SharedShape>")
	assert.Equal(t, []string{`@property (readonly) double radius;`}, memberSignatures(t, h, "SharedCircle"))
	assert.Empty(t, h.ProtocolForward)
}

func TestGenerate_AmbiguousMapping(t *testing.T) {
	h := generate(t, `
name: app
files:
  - name: Io.kt
    package: com.example
    classes:
      - name: Readable
        kind: interface
      - name: Writable
        kind: interface
      - name: Stream
        superInterfaces: [com.example.Readable, com.example.Writable]
      - name: Factory
        members:
          - {name: open, returns: com.example.Stream}
          - {name: reopen, returns: com.example.Stream}
`, func(o *Options) {
		o.Mappings = []bridge.Mapping{
			{Class: "com.example.Writable", Target: "NSOutputStream"},
			{Class: "com.example.Readable", Target: "NSInputStream"},
		}
	})

	assert.Equal(t, []string{
		`- (NSInputStream *)open;`,
		`- (NSInputStream *)reopen;`,
	}, memberSignatures(t, h, "SharedFactory"))
	require.Len(t, h.Warnings, 1)
	assert.Equal(t, CodeModeling, h.Warnings[0].Code)
	assert.Contains(t, h.Warnings[0].Message, "com.example.Stream")
	for _, name := range []string{"SharedStream", "SharedReadable", "SharedWritable"} {
		assert.Nil(t, h.Stub(name), name)
	}
}

func TestGenerate_ThrowingMembers(t *testing.T) {
	h := generate(t, `
name: app
files:
  - name: Api.kt
    package: com.example
    classes:
      - name: Api
        members:
          - name: load
            returns: std.String
            throws: [std.Exception]
          - name: count
            returns: Int
            throws: [std.Throwable]
          - name: reset
            throws: [std.Throwable]
          - name: fetch
            suspend: true
            returns: std.String?
`)

	api := classInterface(t, h, "SharedApi")
	assert.Equal(t, []string{
		`- (NSString * _Nullable)loadAndReturnError:(NSError * _Nullable * _Nullable)error __attribute__((swift_name("load()")));`,
		`- (BOOL)countAndReturnResult:(int32_t *)result error:(NSError * _Nullable * _Nullable)error __attribute__((swift_name("count(result:)")));`,
		`- (BOOL)resetAndReturnError:(NSError * _Nullable * _Nullable)error __attribute__((swift_name("reset()")));`,
		`- (void)fetchWithCompletionHandler:(void (^)(NSString * _Nullable_result, NSError * _Nullable))completionHandler __attribute__((swift_name("fetch(completionHandler:)")));`,
	}, signatures(api.Members))

	notes := make([]string, len(api.Members))
	for i, m := range api.Members {
		c := m.(*objc.Method).Comment
		require.NotNil(t, c)
		notes[i] = strings.Join(c.Lines, " ")
	}
	assert.Equal(t, "@note This method converts instances of Exception to errors. Other uncaught exceptions are fatal.", notes[0])
	assert.Equal(t, "@note This method converts all exceptions to errors.", notes[1])
	assert.Equal(t, "@note This method converts all exceptions to errors.", notes[2])
	assert.Equal(t, "@note This method converts instances of CancellationException to errors. Other uncaught exceptions are fatal.", notes[3])

	throwable := stubIndex(h, "SharedStdThrowable")
	exception := stubIndex(h, "SharedStdException")
	require.Greater(t, throwable, 0)
	assert.Less(t, throwable, exception)
	assert.Less(t, exception, stubIndex(h, "SharedStdCancellationException"))
	assert.Empty(t, h.Warnings)
}

func TestGenerate_ThrowsWarnings(t *testing.T) {
	h := generate(t, `
name: app
files:
  - name: Jobs.kt
    package: com.example
    classes:
      - name: Job
        modality: open
        members:
          - {name: run}
      - name: RetryJob
        superClass: com.example.Job
        members:
          - name: run
            throws: [std.Exception]
            overrides: [com.example.Job.run]
      - name: Bad
        members:
          - name: fail
            throws: [std.String]
`)

	require.Len(t, h.Warnings, 2)
	assert.Equal(t, CodeThrows, h.Warnings[0].Code)
	assert.Equal(t, "com.example.RetryJob.run", h.Warnings[0].Decl)
	assert.Equal(t, CodeNotThrowable, h.Warnings[1].Code)
	assert.Contains(t, h.Warnings[1].Message, "std.String")

	assert.Empty(t, memberSignatures(t, h, "SharedRetryJob"))
	assert.Equal(t, []string{
		`- (BOOL)failAndReturnError:(NSError * _Nullable * _Nullable)error __attribute__((swift_name("fail()")));`,
	}, memberSignatures(t, h, "SharedBad"))
}

func TestGenerate_ObjectsEnumsAndCompanions(t *testing.T) {
	h := generate(t, `
name: app
files:
  - name: Things.kt
    package: com.example
    classes:
      - name: Registry
        kind: object
        members:
          - {name: size, type: Int}
      - name: Color
        kind: enum
        entries: [RED, DARK_GREEN]
      - name: Widget
        constructors: [{}]
        nested:
          - name: Companion
            kind: companion
            members:
              - {name: create, returns: com.example.Widget}
`)

	assert.Equal(t, strings.Join([]string{
		`__attribute__((objc_subclassing_restricted))`,
		`__attribute__((swift_name("Registry")))`,
		`@interface SharedRegistry : SharedBase`,
		`+ (instancetype)alloc __attribute__((unavailable));`,
		`+ (instancetype)allocWithZone:(struct _NSZone *)zone __attribute__((unavailable));`,
		`+ (instancetype)registry __attribute__((swift_name("init()")));`,
		`@property (class, readonly) SharedRegistry *shared;`,
		`@property (readonly) int32_t size;`,
		`@end`,
	}, "\n"), stubText(t, h, "SharedRegistry"))

	assert.Contains(t, stubText(t, h, "SharedColor"), "@interface SharedColor : SharedStdEnum<SharedColor *>")
	color := memberSignatures(t, h, "SharedColor")
	assert.Contains(t, color, `- (instancetype)initWithName:(NSString *)name ordinal:(int32_t)ordinal __attribute__((swift_name("init(name:ordinal:)"))) __attribute__((objc_designated_initializer)) __attribute__((unavailable));`)
	assert.Contains(t, color, `@property (class, readonly) SharedColor *red;`)
	assert.Contains(t, color, `@property (class, readonly) SharedColor *darkGreen;`)
	assert.Contains(t, color, `@property (class, readonly) NSArray<SharedColor *> *entries;`)
	assert.Less(t, stubIndex(h, "SharedStdEnum"), stubIndex(h, "SharedColor"))

	widget := memberSignatures(t, h, "SharedWidget")
	assert.Contains(t, widget, `+ (instancetype)new __attribute__((availability(swift, unavailable, message="use object initializers instead")));`)
	assert.Contains(t, widget, `@property (class, readonly) SharedWidgetCompanion *companion;`)
	assert.Less(t, stubIndex(h, "SharedWidget"), stubIndex(h, "SharedWidgetCompanion"))

	assert.Equal(t, []string{"SharedColor", "SharedWidgetCompanion"}, h.ClassForward)
}

func TestGenerate_ExtensionsAndFileHolders(t *testing.T) {
	h := generate(t, `
name: app
files:
  - name: User.kt
    package: com.example
    classes:
      - name: User
        constructors:
          - params: [{name: name, type: std.String}]
        members:
          - {name: name, type: std.String}
    members:
      - {name: greet, receiver: com.example.User, returns: std.String}
      - {name: initials, receiver: com.example.User, type: std.String}
  - name: Strings.kt
    package: com.example
    members:
      - {name: shout, receiver: std.String, returns: std.String}
      - {name: answer, type: Int}
      - name: copyAll
        params: [{name: items, type: "std.collections.List<std.String>"}]
`)

	var category *objc.Interface
	for _, s := range h.Stubs {
		if i, ok := s.(*objc.Interface); ok && i.Name == "SharedUser" && i.IsCategory() {
			category = i
		}
	}
	require.NotNil(t, category)
	assert.Equal(t, "Extensions", category.Category)
	assert.Equal(t, []string{
		`- (NSString *)greet;`,
		`@property (readonly) NSString *initials;`,
	}, signatures(category.Members))
	assert.Greater(t, indexOf(h, category), stubIndex(h, "SharedUser"))

	assert.Nil(t, h.Stub("SharedUserKt"))
	assert.Equal(t, []string{
		`+ (NSString *)shout:(NSString *)receiver;`,
		`@property (class, readonly) int32_t answer;`,
		`+ (void)doCopyAllItems:(NSArray<NSString *> *)items __attribute__((swift_name("doCopyAll(items:)")));`,
	}, memberSignatures(t, h, "SharedStringsKt"))
	assert.Contains(t, classInterface(t, h, "SharedStringsKt").Attributes, objc.SwiftNameAttribute("StringsKt"))
}

func TestGenerate_InvariantViolation(t *testing.T) {
	m, err := ir.DecodeModule([]byte(`
name: app
files:
  - name: Broken.kt
    package: com.example
    classes:
      - name: Broken
        members:
          - {name: missing, type: com.example.Nowhere}
`), ir.FormatYAML)
	require.NoError(t, err)
	u := ir.NewUniverse(m)
	require.NotEmpty(t, u.Validate())

	h, err := NewHeaderGenerator(DefaultOptions()).Generate(u)
	require.Error(t, err)
	assert.Nil(t, h)
	assert.True(t, errors.HasAssertionFailure(err))
	assert.Contains(t, err.Error(), "generating header")
}

func TestGenerate_InvalidOptions(t *testing.T) {
	u := decode(t, pairDoc)
	tests := []struct {
		name string
		opts func(*Options)
		want string
	}{
		{"unknown module", func(o *Options) { o.Modules = []string{"nope"} }, `module "nope"`},
		{"unknown mapped class", func(o *Options) {
			o.Mappings = []bridge.Mapping{{Class: "com.example.Missing", Target: "NSObject"}}
		}, "com.example.Missing"},
		{"bad prefix", func(o *Options) { o.Prefix = "My-Lib" }, "valid identifier"},
		{"duplicate mapping", func(o *Options) {
			o.Mappings = []bridge.Mapping{
				{Class: "com.example.Pair", Target: "NSObject"},
				{Class: "com.example.Pair", Target: "NSValue"},
			}
		}, "duplicate type mapping"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.opts(&opts)
			h, err := NewHeaderGenerator(opts).Generate(u)
			require.Error(t, err)
			assert.Nil(t, h)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestGenerate_CustomReporter(t *testing.T) {
	rec := &recordingReporter{}
	g := NewHeaderGenerator(DefaultOptions())
	g.Reporter = rec
	h, err := g.Generate(decode(t, `
name: app
files:
  - name: Bad.kt
    package: com.example
    classes:
      - name: Bad
        members:
          - {name: fail, throws: [std.String]}
`))
	require.NoError(t, err)
	assert.Empty(t, h.Warnings)
	assert.Equal(t, []string{"com.example.Bad.fail: Thrown type std.String is not throwable and is ignored"}, rec.messages)
}

func TestGenerate_Comments(t *testing.T) {
	doc := `
name: app
files:
  - name: Doc.kt
    package: com.example
    classes:
      - name: Doc
        doc: "A documented */ class."
        members:
          - {name: size, type: Int, doc: Number of items.}
`
	h := generate(t, doc, func(o *Options) { o.EmitComments = true })
	text := stubText(t, h, "SharedDoc")
	assert.Contains(t, text, `A documented *\/ class.`)
	assert.Contains(t, text, "Number of items.")

	h = generate(t, doc)
	assert.NotContains(t, stubText(t, h, "SharedDoc"), "documented")
}

func TestGenerate_Deterministic(t *testing.T) {
	a := generate(t, pairDoc).String()
	b := generate(t, pairDoc).String()
	assert.Equal(t, a, b)
}

type recordingReporter struct {
	messages []string
}

func (r *recordingReporter) Report(msg string) { r.messages = append(r.messages, msg) }

func (r *recordingReporter) ReportMember(d ir.Decl, msg string) {
	r.messages = append(r.messages, d.QualifiedName()+": "+msg)
}

func signatures(stubs []objc.Stub) []string {
	out := make([]string, len(stubs))
	for i, s := range stubs {
		out[i] = objc.Signature(s)
	}
	return out
}

func indexOf(h *Header, s objc.Stub) int {
	for i, x := range h.Stubs {
		if x == s {
			return i
		}
	}
	return -1
}
